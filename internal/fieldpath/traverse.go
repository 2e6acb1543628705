package fieldpath

import (
	"fmt"

	"entity-schema/internal/diagnostic"
	"entity-schema/internal/record"
	"entity-schema/internal/suggest"
	"entity-schema/utils"
)

const maxSuggestions = 3

// step is one resolved location: its value, its label, and how to replace it.
type step struct {
	value any
	label string
	store func(any) error
}

// fault is a traversal failure. Exists reports every fault as a diagnostic;
// Read and Write return the first one as an *Error.
type fault struct {
	err         error
	code        string
	label       string
	detail      string
	suggestions []string
}

func (f *fault) asError(op, path string) error {
	return &Error{Op: op, Path: path, Label: f.label, Err: f.err, Detail: f.detail}
}

func (f *fault) report(d *diagnostic.Diagnostics) {
	d.AddError(f.code, f.detail, f.label, f.suggestions...)
}

// lookup resolves key against cur, which must be a keyed container.
func lookup(cur any, key, label string) (step, *fault) {
	next := record.JoinKey(label, key)

	c, ok := record.Open(cur)
	if !ok {
		return step{}, &fault{
			err:   ErrMissingMember,
			code:  diagnostic.CodeMissingMember,
			label: next,
			detail: fmt.Sprintf("missing key or member %q in value of type %s at %q; full path attempted: %q",
				key, typeName(cur), rootLabel(label), next),
		}
	}

	v, ok := c.Lookup(key)
	if !ok {
		return step{}, missingKey(c, cur, key, label)
	}

	return step{
		value: v,
		label: next,
		store: func(nv any) error { return c.Store(key, nv) },
	}, nil
}

func missingKey(c record.Container, cur any, key, label string) *fault {
	next := record.JoinKey(label, key)

	f := &fault{
		err:         ErrMissingMember,
		code:        diagnostic.CodeMissingKey,
		label:       next,
		detail:      fmt.Sprintf("missing key %q in mapping at %q; full path attempted: %q", key, rootLabel(label), next),
		suggestions: suggest.Closest(key, c.Names(), suggest.DefaultThreshold, maxSuggestions),
	}

	if c.Kind() == record.KindObject {
		f.code = diagnostic.CodeMissingMember
		f.detail = fmt.Sprintf("missing member %q in object of type %s at %q; full path attempted: %q",
			key, typeName(cur), rootLabel(label), next)
	}

	return f
}

// expand applies one index group to v. With strict set (Exists), a group
// against a sequence must hold exactly one selector.
func expand(v any, g IndexGroup, label string, strict bool) ([]step, []*fault) {
	if seq, ok := record.OpenSequence(v); ok {
		return expandSequence(seq, g, label, strict)
	}

	if c, ok := record.Open(v); ok {
		return expandKeyed(c, v, g, label)
	}

	return nil, []*fault{{
		err:    ErrNonContainer,
		code:   diagnostic.CodeNotContainer,
		label:  label,
		detail: fmt.Sprintf("expected container (sequence or mapping) at %q, found %s", label, typeName(v)),
	}}
}

func expandSequence(seq record.Sequence, g IndexGroup, label string, strict bool) ([]step, []*fault) {
	if strict && len(g) != 1 {
		return nil, []*fault{{
			err:    ErrIndexOutOfRange,
			code:   diagnostic.CodeInvalidGroup,
			label:  label,
			detail: fmt.Sprintf("invalid index group %s for sequence at %q", g, label),
		}}
	}

	if g.HasWildcard() {
		steps := make([]step, 0, seq.Len())
		for i := range seq.Len() {
			steps = append(steps, element(seq, i, label))
		}

		return steps, nil
	}

	var (
		steps  []step
		faults []*fault
	)

	for _, sel := range g {
		i, ok := sel.Index()
		if !ok || !utils.IsInRange(0, i, seq.Len()-1) {
			faults = append(faults, &fault{
				err:    ErrIndexOutOfRange,
				code:   diagnostic.CodeIndexOutOfRange,
				label:  label + "[" + string(sel) + "]",
				detail: fmt.Sprintf("index %q out of range for sequence at %q; sequence length: %d", sel, label, seq.Len()),
			})

			continue
		}

		steps = append(steps, element(seq, i, label))
	}

	return steps, faults
}

func element(seq record.Sequence, i int, label string) step {
	return step{
		value: seq.At(i),
		label: record.JoinIndex(label, i),
		store: func(nv any) error { return seq.Set(i, nv) },
	}
}

// expandKeyed applies a group to a mapping or object. A wildcard selects
// every entry; otherwise each named key that is present becomes a branch and
// each absent one a fault.
func expandKeyed(c record.Container, v any, g IndexGroup, label string) ([]step, []*fault) {
	var names []string

	if g.HasWildcard() {
		names = c.Names()
	} else {
		names = make([]string, len(g))
		for i, sel := range g {
			names[i] = string(sel)
		}
	}

	var (
		steps  []step
		faults []*fault
	)

	for _, name := range names {
		child, ok := c.Lookup(name)
		if !ok {
			faults = append(faults, missingKey(c, v, name, label))
			continue
		}

		steps = append(steps, step{
			value: child,
			label: record.JoinKey(label, name),
			store: func(nv any) error { return c.Store(name, nv) },
		})
	}

	return steps, faults
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}

	return fmt.Sprintf("%T", v)
}

func rootLabel(label string) string {
	if label == "" {
		return "[root]"
	}

	return label
}
