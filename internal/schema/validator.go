package schema

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"entity-schema/internal/diagnostic"
	"entity-schema/internal/fieldpath"
	"entity-schema/internal/record"
	"entity-schema/internal/suggest"
)

const maxSuggestions = 3

// Validator checks records against every node of a registry.
// It holds no per-record state and may be shared between goroutines.
type Validator struct {
	reg         *Registry
	logger      zerolog.Logger
	suggestions bool
}

// Option configures a Validator.
type Option func(*Validator)

// WithLogger sets the logger used for per-node decisions.
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Validator) { v.logger = logger }
}

// WithSuggestions toggles "did you mean" hints on undefined fields.
func WithSuggestions(enabled bool) Option {
	return func(v *Validator) { v.suggestions = enabled }
}

// NewValidator returns a validator over reg.
func NewValidator(reg *Registry, opts ...Option) *Validator {
	v := &Validator{
		reg:         reg,
		logger:      zerolog.Nop(),
		suggestions: true,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Evaluation is the result of checking one node against one record.
type Evaluation struct {
	// Implemented is true when every Mandatory path resolves and, if AnyOf
	// is declared, at least one AnyOf path resolves.
	Implemented bool
	// Fields holds every label resolved by the node's paths, sorted.
	Fields []string
	// Diagnostics holds the problems that made the node not implemented.
	Diagnostics diagnostic.Diagnostics
}

// Outcome is the result of validating one record.
type Outcome struct {
	Status Status
	// DefinedFields are the labels sanctioned by implemented nodes.
	DefinedFields []string
	// UndefinedFields are record leaves no implemented node accounts for.
	UndefinedFields []string
	// ImplementedSchemas are the nodes the record implements.
	ImplementedSchemas []string
	// DroppedSchemas are the nodes skipped because a parent was absent.
	DroppedSchemas []string
	// Diagnostics explains every missing field of a required node and every
	// undefined field.
	Diagnostics diagnostic.Diagnostics
}

// Evaluate checks n against rec. Optional paths only ever add fields.
func (v *Validator) Evaluate(n *Node, rec any) Evaluation {
	ev := Evaluation{Implemented: true}
	fields := make(map[string]struct{})

	for _, p := range n.Mandatory {
		res := fieldpath.Exists(rec, p)
		addAll(fields, res.Found)

		if !res.OK() {
			ev.Implemented = false
			ev.Diagnostics.Merge(res.Diagnostics)
		}
	}

	for _, p := range n.Optional {
		addAll(fields, fieldpath.Exists(rec, p).Found)
	}

	if len(n.AnyOf) > 0 {
		found := false

		for _, p := range n.AnyOf {
			res := fieldpath.Exists(rec, p)
			addAll(fields, res.Found)

			found = found || res.OK()
		}

		if !found {
			ev.Implemented = false
			ev.Diagnostics.AddError(diagnostic.CodeNoAlternative,
				fmt.Sprintf("none of the alternatives exist: %s", strings.Join(n.AnyOf, ", ")), "")
		}
	}

	ev.Fields = sortedSet(fields)

	return ev.withSchema(n.Name)
}

func (ev Evaluation) withSchema(name string) Evaluation {
	ev.Diagnostics = ev.Diagnostics.WithSchema(name)
	return ev
}

// Validate checks rec against every registered node, parents first.
//
// A node is skipped when an optional ancestor was not implemented. A required
// node that is not implemented makes the record invalid, and the pass goes on
// so that every missing field is reported. The only errors returned are
// configuration errors in the registry.
func (v *Validator) Validate(rec any) (*Outcome, error) {
	plan, err := v.reg.Plan()
	if err != nil {
		return nil, err
	}

	var (
		out         = &Outcome{Status: StatusValid}
		dropped     = make(map[string]struct{})
		defined     = make(map[string]struct{})
		implemented = make(map[string]struct{})
	)

	for _, name := range plan.Order {
		if _, ok := dropped[name]; ok {
			v.logger.Debug().Str("schema", name).Msg("skipping dropped schema")
			continue
		}

		n, ok := v.reg.Get(name)
		if !ok {
			return nil, fmt.Errorf("schema %q disappeared from registry", name)
		}

		required := v.required(n, implemented, &out.Diagnostics)
		ev := v.Evaluate(n, rec)

		switch {
		case ev.Implemented:
			addAll(defined, ev.Fields)
			implemented[name] = struct{}{}

			v.logger.Debug().Str("schema", name).Int("fields", len(ev.Fields)).Msg("schema implemented")

		case !required:
			descendants := plan.Graph.Descendants(name)
			addAll(dropped, descendants)

			v.logger.Debug().Str("schema", name).Strs("dropped", descendants).Msg("schema not implemented")

		default:
			out.Status = StatusInvalid
			out.Diagnostics.Merge(requiredMissing(ev.Diagnostics))

			v.logger.Debug().Str("schema", name).Int("errors", len(ev.Diagnostics.Errors)).Msg("required schema not implemented")
		}
	}

	out.DefinedFields = sortedSet(defined)
	out.ImplementedSchemas = sortedSet(implemented)
	out.DroppedSchemas = sortedSet(dropped)
	out.UndefinedFields = undefined(record.Flatten(rec), defined)

	var candidates []string
	if v.suggestions && len(out.UndefinedFields) > 0 {
		candidates = v.reg.DeclaredPaths()
	}

	for _, label := range out.UndefinedFields {
		var hints []string
		if candidates != nil {
			hints = suggest.Closest(label, candidates, suggest.DefaultThreshold, maxSuggestions)
		}

		out.Diagnostics.AddWarning(diagnostic.CodeUndefinedField, "field is not defined by any implemented schema", label, hints...)
	}

	return out, nil
}

// required resolves n's requirement against the nodes implemented so far.
// Names that are not registered never count and are reported as warnings.
func (v *Validator) required(n *Node, implemented map[string]struct{}, d *diagnostic.Diagnostics) bool {
	if n.Required.Always {
		return true
	}

	for _, name := range n.Required.When {
		if _, ok := v.reg.Get(name); !ok {
			v.logger.Warn().Str("schema", n.Name).Str("required_by", name).Msg("requirement names unknown schema")

			var w diagnostic.Diagnostics
			w.AddWarning(diagnostic.CodeUnknownSchema, fmt.Sprintf("Required names unknown schema %q", name), "")
			d.Merge(w.WithSchema(n.Name))

			continue
		}

		if _, ok := implemented[name]; ok {
			return true
		}
	}

	return false
}

// requiredMissing recodes path failures of a required node as missing fields.
func requiredMissing(d diagnostic.Diagnostics) diagnostic.Diagnostics {
	out := diagnostic.Diagnostics{Errors: slices.Clone(d.Errors)}
	for i := range out.Errors {
		if out.Errors[i].Code != diagnostic.CodeNoAlternative {
			out.Errors[i].Code = diagnostic.CodeMissingField
		}
	}

	return out
}

// undefined returns the leaves not covered by a defined label. A defined
// label covers itself and the elements of a sequence it names, never the
// keys of a mapping below it.
func undefined(leaves []string, defined map[string]struct{}) []string {
	out := make(map[string]struct{})

	for _, leaf := range leaves {
		if !covered(leaf, defined) {
			out[leaf] = struct{}{}
		}
	}

	return sortedSet(out)
}

// covered strips trailing index steps ("Tags[0][1]" -> "Tags[0]" -> "Tags")
// looking for a defined label.
func covered(label string, defined map[string]struct{}) bool {
	for {
		if _, ok := defined[label]; ok {
			return true
		}

		if !strings.HasSuffix(label, "]") {
			return false
		}

		i := strings.LastIndexByte(label, '[')
		if i <= 0 {
			return false
		}

		label = label[:i]
	}
}

func addAll(set map[string]struct{}, items []string) {
	for _, item := range items {
		set[item] = struct{}{}
	}
}

func sortedSet(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}

	slices.Sort(out)

	return out
}
