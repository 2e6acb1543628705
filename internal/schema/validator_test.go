package schema

import (
	"bytes"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-schema/internal/diagnostic"
	"entity-schema/internal/graph"
	"entity-schema/internal/record"
)

func newRegistry(t *testing.T, nodes ...*Node) *Registry {
	t.Helper()

	reg := NewRegistry()
	for _, n := range nodes {
		require.NoError(t, reg.Register(n))
	}

	return reg
}

func TestValidate_SingleRequiredSchema(t *testing.T) {
	reg := newRegistry(t, &Node{Name: "base", Mandatory: []string{"Stats.Strength"}, Required: Requirement{Always: true}})
	rec := record.NewMap("Stats", record.NewMap("Strength", 5))

	out, err := NewValidator(reg).Validate(rec)
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"Stats.Strength"}, out.DefinedFields)
	assert.Empty(t, out.UndefinedFields)
	assert.Equal(t, []string{"base"}, out.ImplementedSchemas)
	assert.Empty(t, out.DroppedSchemas)
	assert.False(t, out.Diagnostics.HasErrors())
}

func TestValidate_CascadeDropsDescendants(t *testing.T) {
	reg := newRegistry(t,
		&Node{Name: "base", Mandatory: []string{"Core"}},
		&Node{Name: "child", Extends: StringOrArray{"base"}, Mandatory: []string{"Extra"}, Required: Requirement{Always: true}},
		&Node{Name: "grandchild", Extends: StringOrArray{"child"}, Mandatory: []string{"More"}},
	)
	rec := record.NewMap("Extra", 1, "More", 2)

	out, err := NewValidator(reg).Validate(rec)
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"child", "grandchild"}, out.DroppedSchemas)
	assert.Empty(t, out.ImplementedSchemas)
	assert.NotContains(t, out.ImplementedSchemas, "child")
	assert.Equal(t, []string{"Extra", "More"}, out.UndefinedFields)
}

func TestValidate_RequiredMissingIsInvalidAndKeepsGoing(t *testing.T) {
	reg := newRegistry(t,
		&Node{Name: "identity", Mandatory: []string{"Name", "Stats.HP", "Stats.MP"}, Required: Requirement{Always: true}},
		&Node{Name: "inventory", Mandatory: []string{"Gold"}},
	)
	rec := record.NewMap("Name", "Aria", "Stats", record.NewMap("HP", 3), "Gold", 10)

	out, err := NewValidator(reg).Validate(rec)
	require.NoError(t, err)

	assert.Equal(t, StatusInvalid, out.Status)
	assert.Equal(t, []string{"inventory"}, out.ImplementedSchemas)
	assert.Equal(t, []string{"Gold"}, out.DefinedFields)

	require.Len(t, out.Diagnostics.Errors, 1)

	d := out.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeMissingField, d.Code)
	assert.Equal(t, "identity", d.Schema)
	assert.Equal(t, "Stats.MP", d.Label)
}

func TestValidate_ConditionalRequirement(t *testing.T) {
	nodes := func() []*Node {
		return []*Node{
			{Name: "feature", Mandatory: []string{"Feature"}},
			{Name: "trait", Extends: StringOrArray{"feature"}, Mandatory: []string{"Trait"}, Required: Requirement{When: []string{"feature"}}},
			{Name: "quirk", Extends: StringOrArray{"trait"}, Mandatory: []string{"Quirk"}},
		}
	}

	t.Run("feature implemented", func(t *testing.T) {
		out, err := NewValidator(newRegistry(t, nodes()...)).Validate(record.NewMap("Feature", true))
		require.NoError(t, err)

		assert.Equal(t, StatusInvalid, out.Status)
		assert.Equal(t, []string{"feature"}, out.ImplementedSchemas)
		assert.Empty(t, out.DroppedSchemas)
	})

	t.Run("feature absent", func(t *testing.T) {
		out, err := NewValidator(newRegistry(t, nodes()...)).Validate(record.NewMap("Other", true))
		require.NoError(t, err)

		assert.Equal(t, StatusValid, out.Status)
		assert.Equal(t, []string{"quirk", "trait"}, out.DroppedSchemas)
	})
}

func TestValidate_ConditionOnUnprocessedSchemaDoesNotCount(t *testing.T) {
	// "early" sorts first and is processed before "late" is implemented.
	reg := newRegistry(t,
		&Node{Name: "early", Mandatory: []string{"Missing"}, Required: Requirement{When: []string{"late", "ghost"}}},
		&Node{Name: "late", Mandatory: []string{"Present"}},
	)

	out, err := NewValidator(reg).Validate(record.NewMap("Present", 1))
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"late"}, out.ImplementedSchemas)
	require.Len(t, out.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnknownSchema, out.Diagnostics.Warnings[0].Code)
	assert.Equal(t, "early", out.Diagnostics.Warnings[0].Schema)
}

func TestValidate_AnyOf(t *testing.T) {
	reg := newRegistry(t, &Node{
		Name:     "caster",
		AnyOf:    []string{"Stats.Intelligence", "Stats.Wisdom"},
		Optional: []string{"Focus"},
		Required: Requirement{Always: true},
	})

	out, err := NewValidator(reg).Validate(record.NewMap("Stats", record.NewMap("Wisdom", 4, "Luck", 1)))
	require.NoError(t, err)
	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"Stats.Wisdom"}, out.DefinedFields)
	assert.Equal(t, []string{"Stats.Luck"}, out.UndefinedFields)

	out, err = NewValidator(reg).Validate(record.NewMap("Stats", record.NewMap("Luck", 1)))
	require.NoError(t, err)
	assert.Equal(t, StatusInvalid, out.Status)

	var codes []string
	for _, d := range out.Diagnostics.Errors {
		codes = append(codes, d.Code)
	}

	assert.Equal(t, []string{diagnostic.CodeNoAlternative}, codes)
}

func TestValidate_UndefinedFieldsAndSuggestions(t *testing.T) {
	reg := newRegistry(t, &Node{
		Name:      "hero",
		Mandatory: []string{"Skills[*].Name", "Stats"},
		Optional:  []string{"Strength"},
		Required:  Requirement{Always: true},
	})
	rec := record.NewMap(
		"Stats", record.NewMap("HP", 1, "MP", 2),
		"Skills", []any{record.NewMap("Name", "Sword", "Rank", 1)},
		"Strenght", 3,
	)

	out, err := NewValidator(reg).Validate(rec)
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"Skills[0].Name", "Stats"}, out.DefinedFields)
	assert.Equal(t, []string{"Skills[0].Rank", "Stats.HP", "Stats.MP", "Strenght"}, out.UndefinedFields,
		"declaring a mapping does not declare its keys")

	require.Len(t, out.Diagnostics.Warnings, 4)

	last := out.Diagnostics.Warnings[3]
	assert.Equal(t, diagnostic.CodeUndefinedField, last.Code)
	assert.Equal(t, "Strenght", last.Label)
	assert.Equal(t, []string{"Strength"}, last.Suggestions)

	out, err = NewValidator(reg, WithSuggestions(false)).Validate(rec)
	require.NoError(t, err)
	assert.Empty(t, out.Diagnostics.Warnings[3].Suggestions)
}

func TestValidate_DeclaredMappingDoesNotHideTypos(t *testing.T) {
	reg := newRegistry(t, &Node{Name: "hero", Mandatory: []string{"Stats", "Tags"}, Required: Requirement{Always: true}})
	rec := record.NewMap(
		"Stats", record.NewMap("Strength", 5, "Strenght", 3),
		"Tags", []any{"brave", []any{"loud", "tall"}},
	)

	out, err := NewValidator(reg).Validate(rec)
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"Stats", "Tags"}, out.DefinedFields)
	assert.Equal(t, []string{"Stats.Strength", "Stats.Strenght"}, out.UndefinedFields,
		"sequence elements are covered by the sequence, mapping keys are not")
}

func TestValidate_ObjectRecordUsesPublicMembers(t *testing.T) {
	type stats struct {
		HP int
		mp int
	}

	type hero struct {
		Name  string
		Stats stats
		notes string
	}

	reg := newRegistry(t, &Node{Name: "hero", Mandatory: []string{"Name", "Stats.HP"}, Required: Requirement{Always: true}})

	out, err := NewValidator(reg).Validate(&hero{Name: "Aria", Stats: stats{HP: 3}})
	require.NoError(t, err)

	assert.Equal(t, StatusValid, out.Status)
	assert.Equal(t, []string{"Name", "Stats.HP"}, out.DefinedFields)
	assert.Empty(t, out.UndefinedFields)
}

func TestValidate_ConfigurationErrors(t *testing.T) {
	t.Run("cycle", func(t *testing.T) {
		reg := newRegistry(t,
			&Node{Name: "X", Extends: StringOrArray{"Y"}},
			&Node{Name: "Y", Extends: StringOrArray{"X"}},
		)

		out, err := NewValidator(reg).Validate(record.NewMap())
		require.ErrorIs(t, err, graph.ErrCycleDetected)
		assert.Nil(t, out)
	})

	t.Run("unknown parent", func(t *testing.T) {
		reg := newRegistry(t, &Node{Name: "X", Extends: StringOrArray{"ghost"}})

		_, err := NewValidator(reg).Validate(record.NewMap())
		require.ErrorIs(t, err, graph.ErrUnknownNode)
	})
}

func TestValidate_LogsDecisions(t *testing.T) {
	var buf bytes.Buffer

	reg := newRegistry(t,
		&Node{Name: "base", Mandatory: []string{"Core"}},
		&Node{Name: "child", Extends: StringOrArray{"base"}},
	)

	_, err := NewValidator(reg, WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))).Validate(record.NewMap())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), `"schema":"base"`)
	assert.Contains(t, buf.String(), "skipping dropped schema")
}

func TestRegistry_PlanIsCachedPerVersion(t *testing.T) {
	reg := newRegistry(t, &Node{Name: "a"}, &Node{Name: "b", Extends: StringOrArray{"a"}})

	p1, err := reg.Plan()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, p1.Order)

	p2, err := reg.Plan()
	require.NoError(t, err)
	assert.Same(t, p1, p2)

	require.NoError(t, reg.Register(&Node{Name: "c", Extends: StringOrArray{"b"}}))

	p3, err := reg.Plan()
	require.NoError(t, err)
	assert.NotSame(t, p1, p3)
	assert.Equal(t, []string{"a", "b", "c"}, p3.Order)
	assert.Equal(t, reg.Version(), p3.Version)
}

func TestValidator_ConcurrentUse(t *testing.T) {
	reg := newRegistry(t,
		&Node{Name: "base", Mandatory: []string{"Name"}, Required: Requirement{Always: true}},
		&Node{Name: "caster", Extends: StringOrArray{"base"}, Mandatory: []string{"Mana"}},
	)
	v := NewValidator(reg)

	var wg sync.WaitGroup

	for i := range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			rec := record.NewMap("Name", "n", "Mana", i)

			out, err := v.Validate(rec)
			assert.NoError(t, err)
			assert.Equal(t, []string{"base", "caster"}, out.ImplementedSchemas)
		}()
	}

	wg.Wait()
}

func TestRegistry_RejectsInvalidNodes(t *testing.T) {
	reg := NewRegistry()

	require.Error(t, reg.Register(nil))
	require.Error(t, reg.Register(&Node{}))
	require.Error(t, reg.Register(&Node{Name: "x", AnyOf: []string{"a.[1]"}}))
	assert.Equal(t, 0, reg.Len())
}
