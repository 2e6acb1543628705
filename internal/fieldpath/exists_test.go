package fieldpath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-schema/internal/diagnostic"
	"entity-schema/internal/record"
)

func TestExists_EmptyPath(t *testing.T) {
	res := Exists(newHero(), "")
	assert.Empty(t, res.Found)
	assert.Empty(t, res.Errors())
	assert.True(t, res.OK())
}

func TestExists_Found(t *testing.T) {
	tests := []struct {
		path  string
		found []string
	}{
		{"Name", []string{"Name"}},
		{"Stats.Strength", []string{"Stats.Strength"}},
		{"Skills[1].Rank", []string{"Skills[1].Rank"}},
		{"Skills[*].Name", []string{"Skills[0].Name", "Skills[1].Name", "Skills[2].Name"}},
		{"Stats[*]", []string{"Stats.Agility", "Stats.Luck", "Stats.Strength"}},
		{"Stats[Strength|Agility]", []string{"Stats.Agility", "Stats.Strength"}},
		{"Grid[1][0]", []string{"Grid[1][0]"}},
		{"Grid[*][*]", []string{"Grid[0][0]", "Grid[0][1]", "Grid[1][0]", "Grid[1][1]"}},
		{"Companion.Attrs.Agility", []string{"Companion.Attrs.Agility"}},
		{"Companion.Tags[0]", []string{"Companion.Tags[0]"}},
		{"Empty[*]", nil},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := Exists(newHero(), tt.path)
			assert.True(t, res.OK(), "errors: %v", res.Errors())
			assert.Equal(t, tt.found, res.Found)
		})
	}
}

func TestExists_AlternativeReportsOnlyMissingKey(t *testing.T) {
	rec := record.NewMap("Stats", record.NewMap("A", 1, "B", 2))

	res := Exists(rec, "Stats[A|C]")

	assert.Equal(t, []string{"Stats.A"}, res.Found)
	require.Len(t, res.Diagnostics.Errors, 1)

	d := res.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeMissingKey, d.Code)
	assert.Equal(t, "Stats.C", d.Label)
	assert.Contains(t, d.Message, `"C"`)
}

func TestExists_MissingKey(t *testing.T) {
	res := Exists(newHero(), "Stats.Strenght")

	assert.Empty(t, res.Found)
	require.Len(t, res.Diagnostics.Errors, 1)

	d := res.Diagnostics.Errors[0]
	assert.Equal(t, diagnostic.CodeMissingKey, d.Code)
	assert.Equal(t, "Stats.Strenght", d.Label)
	assert.Contains(t, d.Message, `full path attempted: "Stats.Strenght"`)
	assert.Equal(t, []string{"Strength"}, d.Suggestions)
}

func TestExists_MissingMemberOnObject(t *testing.T) {
	res := Exists(newHero(), "Companion.secret")

	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, diagnostic.CodeMissingMember, res.Diagnostics.Errors[0].Code)
	assert.Contains(t, res.Diagnostics.Errors[0].Message, "object of type")
}

func TestExists_BranchesFailIndependently(t *testing.T) {
	rec := record.NewMap("Party", []any{
		record.NewMap("HP", 10),
		record.NewMap("MP", 4),
		record.NewMap("HP", 8),
	})

	res := Exists(rec, "Party[*].HP")

	assert.Equal(t, []string{"Party[0].HP", "Party[2].HP"}, res.Found)
	require.Len(t, res.Diagnostics.Errors, 1)
	assert.Equal(t, "Party[1].HP", res.Diagnostics.Errors[0].Label)
}

func TestExists_SequenceErrors(t *testing.T) {
	tests := []struct {
		path string
		code string
	}{
		{"Skills[9]", diagnostic.CodeIndexOutOfRange},
		{"Skills[-1]", diagnostic.CodeIndexOutOfRange},
		{"Skills[Name]", diagnostic.CodeIndexOutOfRange},
		{"Skills[0|1]", diagnostic.CodeInvalidGroup},
		{"Gold[0]", diagnostic.CodeNotContainer},
		{"Gold.Coins", diagnostic.CodeMissingMember},
		{"Stats..Luck", diagnostic.CodeInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := Exists(newHero(), tt.path)
			assert.False(t, res.OK())
			assert.Empty(t, res.Found)
			require.Len(t, res.Diagnostics.Errors, 1)
			assert.Equal(t, tt.code, res.Diagnostics.Errors[0].Code)
		})
	}
}

func TestExists_CollectsEveryError(t *testing.T) {
	rec := record.NewMap("Party", []any{
		record.NewMap("Stats", record.NewMap("HP", 1)),
		record.NewMap("Stats", record.NewMap("MP", 1)),
	})

	res := Exists(rec, "Party[*].Stats[HP|MP]")

	assert.Equal(t, []string{"Party[0].Stats.HP", "Party[1].Stats.MP"}, res.Found)
	assert.Len(t, res.Errors(), 2)
}
