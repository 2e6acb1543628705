package fieldpath

// Tree is the result of Read: a single value, or one branch per match at a
// fan-out point. Each wildcard or multi-selector group met along the path
// adds one level of nesting.
type Tree struct {
	// Value is set on leaves.
	Value any
	// Branches is set on fan-out nodes, ordered by ascending index for
	// sequences, by iteration order for wildcards over mappings, and by
	// selector order for alternatives.
	Branches []Tree

	fanout bool
}

// Leaf wraps a single value.
func Leaf(v any) Tree {
	return Tree{Value: v}
}

// Fan builds a fan-out node.
func Fan(branches ...Tree) Tree {
	if branches == nil {
		branches = []Tree{}
	}

	return Tree{Branches: branches, fanout: true}
}

// IsLeaf reports whether t holds a single value.
func (t Tree) IsLeaf() bool {
	return !t.fanout
}

// Interface converts t to plain values: leaves become their value and fan-out
// nodes become []any.
func (t Tree) Interface() any {
	if !t.fanout {
		return t.Value
	}

	out := make([]any, len(t.Branches))
	for i, b := range t.Branches {
		out[i] = b.Interface()
	}

	return out
}

// Leaves returns every leaf value in order, ignoring nesting.
func (t Tree) Leaves() []any {
	if !t.fanout {
		return []any{t.Value}
	}

	var out []any
	for _, b := range t.Branches {
		out = append(out, b.Leaves()...)
	}

	return out
}

// Read returns the value at path. Fan-out groups produce nested branches. The
// first missing key, out-of-range index, or scalar indexed as a container
// aborts the call.
func Read(rec any, path string) (Tree, error) {
	p, err := Parse(path)
	if err != nil {
		return Tree{}, err
	}

	if len(p) == 0 {
		return Leaf(rec), nil
	}

	r := reader{path: path, segments: p}

	return r.segment(rec, "", 0)
}

type reader struct {
	path     string
	segments Path
}

func (r *reader) segment(cur any, label string, pos int) (Tree, error) {
	if pos == len(r.segments) {
		return Leaf(cur), nil
	}

	seg := r.segments[pos]

	st, f := lookup(cur, seg.Key, label)
	if f != nil {
		return Tree{}, f.asError("read", r.path)
	}

	return r.groups(st, seg.Groups, pos)
}

func (r *reader) groups(st step, groups []IndexGroup, pos int) (Tree, error) {
	if len(groups) == 0 {
		return r.segment(st.value, st.label, pos+1)
	}

	g := groups[0]

	steps, faults := expand(st.value, g, st.label, false)
	if len(faults) > 0 {
		return Tree{}, faults[0].asError("read", r.path)
	}

	if !g.FansOut() {
		return r.groups(steps[0], groups[1:], pos)
	}

	branches := make([]Tree, 0, len(steps))

	for _, s := range steps {
		t, err := r.groups(s, groups[1:], pos)
		if err != nil {
			return Tree{}, err
		}

		branches = append(branches, t)
	}

	return Fan(branches...), nil
}
