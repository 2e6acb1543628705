package record

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeYAML_PreservesOrderAndNesting(t *testing.T) {
	data := `
Name: Aria
Stats:
  Strength: 5
  Dexterity: 3
  Agility: 4
Skills:
  - Name: Stealth
    Rank: 2
  - Name: Climb
    Rank: 1
`

	m, err := DecodeYAML([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Stats", "Skills"}, m.Keys())

	stats, ok := m.Get("Stats")
	require.True(t, ok)
	require.IsType(t, &Map{}, stats)
	assert.Equal(t, []string{"Strength", "Dexterity", "Agility"}, stats.(*Map).Keys())

	skills, ok := m.Get("Skills")
	require.True(t, ok)
	require.IsType(t, []any{}, skills)
	require.Len(t, skills, 2)

	first := skills.([]any)[0].(*Map)
	rank, _ := first.Get("Rank")
	assert.Equal(t, 2, rank)
}

func TestDecodeYAML_Empty(t *testing.T) {
	m, err := DecodeYAML(nil)
	require.NoError(t, err)
	assert.Zero(t, m.Len())
}

func TestDecodeYAML_RejectsNonMapping(t *testing.T) {
	_, err := DecodeYAML([]byte("- a\n- b\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected mapping")
}

func TestEncodeYAML_WritesInIterationOrder(t *testing.T) {
	m := NewMap("Zeta", 1, "Alpha", NewMap("y", true, "x", false))

	data, err := EncodeYAML(m)
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, "Zeta"), strings.Index(out, "Alpha"))
	assert.Less(t, strings.Index(out, "y:"), strings.Index(out, "x:"))
}

func TestBSON_PreservesOrderAndNesting(t *testing.T) {
	m := NewMap(
		"Name", "Aria",
		"Stats", NewMap("Strength", int64(5), "Agility", int64(4)),
		"Tags", []any{"rogue", NewMap("k", "v")},
	)

	data, err := EncodeBSON(m)
	require.NoError(t, err)

	got, err := DecodeBSON(data)
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Stats", "Tags"}, got.Keys())

	stats, _ := got.Get("Stats")
	require.IsType(t, &Map{}, stats)
	assert.Equal(t, []string{"Strength", "Agility"}, stats.(*Map).Keys())

	strength, _ := stats.(*Map).Get("Strength")
	assert.Equal(t, int64(5), strength)

	tags, _ := got.Get("Tags")
	require.IsType(t, []any{}, tags)
	assert.Equal(t, "rogue", tags.([]any)[0])
	assert.IsType(t, &Map{}, tags.([]any)[1])
}

func TestDecodeValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"5", 5},
		{"2.5", 2.5},
		{"hello", "hello"},
		{"true", true},
		{"[1, b]", []any{1, "b"}},
		{"{b: 1, a: 2}", NewMap("b", 1, "a", 2)},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := DecodeValue([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := DecodeValue([]byte("[unclosed"))
	require.Error(t, err)
}
