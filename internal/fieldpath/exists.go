package fieldpath

import (
	"slices"

	"entity-schema/internal/diagnostic"
)

// Result is the outcome of Exists.
type Result struct {
	// Found holds the label of every branch that resolved completely,
	// sorted and without duplicates.
	Found []string
	// Diagnostics holds one error per failed branch.
	Diagnostics diagnostic.Diagnostics
}

// OK reports whether every branch resolved.
func (r Result) OK() bool {
	return !r.Diagnostics.HasErrors()
}

// Errors returns the distinct error messages, sorted.
func (r Result) Errors() []string {
	return r.Diagnostics.Messages()
}

// Exists checks whether path resolves in rec. It never fails: every
// problem on every branch becomes a diagnostic, and branches that succeed
// are reported in Found even when others fail. An empty path yields an empty
// result.
//
// Alternative groups against a mapping only require the named keys to be
// present; other keys in the mapping are ignored.
func Exists(rec any, path string) Result {
	var res Result

	if path == "" {
		return res
	}

	p, err := Parse(path)
	if err != nil {
		res.Diagnostics.AddError(diagnostic.CodeInvalidPath, err.Error(), path)
		return res
	}

	frontier := []step{{value: rec}}

	for _, seg := range p {
		var next []step

		for _, s := range frontier {
			st, f := lookup(s.value, seg.Key, s.label)
			if f != nil {
				f.report(&res.Diagnostics)
				continue
			}

			branches := []step{st}

			for _, g := range seg.Groups {
				var expanded []step

				for _, b := range branches {
					steps, faults := expand(b.value, g, b.label, true)
					for _, f := range faults {
						f.report(&res.Diagnostics)
					}

					expanded = append(expanded, steps...)
				}

				branches = expanded
			}

			next = append(next, branches...)
		}

		frontier = next
	}

	for _, s := range frontier {
		res.Found = append(res.Found, s.label)
	}

	slices.Sort(res.Found)
	res.Found = slices.Compact(res.Found)

	return res
}
