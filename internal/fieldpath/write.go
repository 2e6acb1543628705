package fieldpath

import (
	"fmt"
	"reflect"
)

// Write updates every location matched by path in place. Each target is
// replaced by Combine(old, value, mode). Keys are never created: a missing
// key anywhere along the path, the last one included, fails the call. Fan-out
// groups apply the update to every branch, and the first failing branch
// aborts the call with earlier branches already written. An empty path is a
// no-op.
func Write(rec any, path string, value any, mode Mode) error {
	if !mode.IsValid() {
		return &Error{Op: "write", Path: path, Err: ErrInvalidMode, Detail: fmt.Sprintf("unknown mode %d", int(mode))}
	}

	p, err := Parse(path)
	if err != nil {
		return err
	}

	if len(p) == 0 {
		return nil
	}

	w := writer{path: path, segments: p, value: value, mode: mode}

	return w.segment(rec, "", 0)
}

// WriteOp is Write with the mode given as "=", "+" or "-".
func WriteOp(rec any, path string, value any, op string) error {
	mode, err := ParseMode(op)
	if err != nil {
		return err
	}

	return Write(rec, path, value, mode)
}

type writer struct {
	path     string
	segments Path
	value    any
	mode     Mode
}

func (w *writer) segment(cur any, label string, pos int) error {
	seg := w.segments[pos]

	st, f := lookup(cur, seg.Key, label)
	if f != nil {
		return f.asError("write", w.path)
	}

	return w.groups(st, seg.Groups, pos)
}

func (w *writer) groups(st step, groups []IndexGroup, pos int) error {
	if len(groups) == 0 && pos+1 == len(w.segments) {
		return w.apply(st)
	}

	v, commit := addressable(st)

	if len(groups) == 0 {
		if err := w.segment(v, st.label, pos+1); err != nil {
			return err
		}

		return w.commit(st, commit)
	}

	steps, faults := expand(v, groups[0], st.label, false)
	if len(faults) > 0 {
		return faults[0].asError("write", w.path)
	}

	for _, s := range steps {
		if err := w.groups(s, groups[1:], pos); err != nil {
			return err
		}
	}

	return w.commit(st, commit)
}

func (w *writer) commit(st step, commit func() error) error {
	if commit == nil {
		return nil
	}

	if err := commit(); err != nil {
		return &Error{Op: "write", Path: w.path, Label: st.label, Err: err}
	}

	return nil
}

func (w *writer) apply(st step) error {
	next, err := Combine(st.value, w.value, w.mode)
	if err != nil {
		return &Error{Op: "write", Path: w.path, Label: st.label, Err: err}
	}

	if err := st.store(next); err != nil {
		return &Error{Op: "write", Path: w.path, Label: st.label, Err: err}
	}

	return nil
}

// addressable returns a pointer to a copy of struct and array values so that
// writes below them can land. The returned commit stores the copy back into
// the parent; it is nil when v is already a reference.
func addressable(st step) (any, func() error) {
	rv := reflect.ValueOf(st.value)
	if !rv.IsValid() || rv.Kind() != reflect.Struct && rv.Kind() != reflect.Array {
		return st.value, nil
	}

	p := reflect.New(rv.Type())
	p.Elem().Set(rv)

	return p.Interface(), func() error { return st.store(p.Elem().Interface()) }
}
