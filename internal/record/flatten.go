package record

// Flatten returns the label of every leaf reachable from v through keyed
// containers and sequences, in traversal order. Empty containers count as
// leaves. Only public members of objects are visited.
func Flatten(v any) []string {
	var out []string

	flatten(v, "", &out)

	return out
}

func flatten(v any, label string, out *[]string) {
	if c, ok := Open(v); ok {
		names := c.Names()
		if len(names) == 0 && label != "" {
			*out = append(*out, label)
		}

		for _, name := range names {
			child, _ := c.Lookup(name)
			flatten(child, JoinKey(label, name), out)
		}

		return
	}

	if label == "" {
		return
	}

	if s, ok := OpenSequence(v); ok && s.Len() > 0 {
		for i := range s.Len() {
			flatten(s.At(i), JoinIndex(label, i), out)
		}

		return
	}

	*out = append(*out, label)
}
