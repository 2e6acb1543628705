package fieldpath

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-schema/internal/record"
	"entity-schema/primitive"
)

func TestWrite_AssignRoundTrip(t *testing.T) {
	tests := []struct {
		path  string
		value any
	}{
		{"Name", "Brin"},
		{"Stats.Agility", 11},
		{"Skills[1].Rank", 4},
		{"Grid[0][1]", 42},
		{"Companion.Attrs.Agility", 6},
		{"Companion.Name", "Jet"},
		{"Stats[Luck]", 3},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := newHero()

			require.NoError(t, Write(rec, tt.path, tt.value, ModeAssign))

			got, err := Read(rec, tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.value, got.Value)
		})
	}
}

func TestWrite_FanOutAppliesToEveryBranch(t *testing.T) {
	rec := newHero()

	require.NoError(t, Write(rec, "Skills[*].Rank", 1, ModeAdd))

	got, err := Read(rec, "Skills[*].Rank")
	require.NoError(t, err)
	assert.Equal(t, []any{4, 2, 3}, got.Interface())

	require.NoError(t, Write(rec, "Stats[Strength|Agility]", 2, ModeSubtract))

	got, err = Read(rec, "Stats[*]")
	require.NoError(t, err)
	assert.Equal(t, []any{3, 5, 1}, got.Interface())
}

func TestWrite_CombineModes(t *testing.T) {
	rec := record.NewMap(
		"Gold", 100,
		"Weight", 2.5,
		"Title", "Sir",
		"Cooldown", 3*time.Second,
		"Bag", []any{"rope", "torch", "rope"},
		"Flags", record.NewMap("stealthy", true),
	)

	require.NoError(t, WriteOp(rec, "Gold", 25, "-"))
	require.NoError(t, WriteOp(rec, "Weight", 1, "+"))
	require.NoError(t, WriteOp(rec, "Title", " Aria", "+"))
	require.NoError(t, WriteOp(rec, "Cooldown", time.Second, "-"))
	require.NoError(t, WriteOp(rec, "Bag", "rope", "-"))
	require.NoError(t, WriteOp(rec, "Bag", []any{"map", "coin"}, "+"))
	require.NoError(t, WriteOp(rec, "Flags", record.NewMap("cursed", false), "+"))

	want := map[string]any{
		"Gold":     75,
		"Weight":   3.5,
		"Title":    "Sir Aria",
		"Cooldown": 2 * time.Second,
		"Bag":      []any{"torch", "map", "coin"},
	}

	for path, v := range want {
		got, err := Read(rec, path)
		require.NoError(t, err, path)
		assert.Equal(t, v, got.Value, path)
	}

	flags, _ := rec.Get("Flags")
	assert.Equal(t, []string{"stealthy", "cursed"}, flags.(*record.Map).Keys())
}

func TestWrite_NilOldValueIsReplaced(t *testing.T) {
	rec := record.NewMap("Target", nil)

	require.NoError(t, Write(rec, "Target", 5, ModeAdd))

	v, _ := rec.Get("Target")
	assert.Equal(t, 5, v)
}

func TestWrite_EmptyPathIsNoop(t *testing.T) {
	rec := newHero()
	before := rec.Clone()

	require.NoError(t, Write(rec, "", 1, ModeAssign))
	assert.Equal(t, before, rec)
}

func TestWrite_Errors(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		value any
		mode  Mode
		err   error
	}{
		{"missing intermediate", "Inventory.Gold", 1, ModeAssign, ErrMissingMember},
		{"missing terminal", "Stats.Charisma", 1, ModeAssign, ErrMissingMember},
		{"index out of range", "Skills[5].Rank", 1, ModeAssign, ErrIndexOutOfRange},
		{"scalar indexed", "Gold[0]", 1, ModeAssign, ErrNonContainer},
		{"string minus string", "Name", "A", ModeSubtract, ErrUnsupportedOperator},
		{"number plus string", "Gold", "lots", ModeAdd, ErrUnsupportedOperator},
		{"invalid mode", "Gold", 1, Mode(9), ErrInvalidMode},
		{"bad syntax", "Gold.", 1, ModeAssign, ErrPathSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Write(newHero(), tt.path, tt.value, tt.mode)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v", err)
		})
	}
}

func TestWrite_TypedSlotCoercesOrFails(t *testing.T) {
	rec := newHero()

	require.NoError(t, Write(rec, "Companion.Attrs.Strength", 1.0, ModeAdd))

	got, err := Read(rec, "Companion.Attrs.Strength")
	require.NoError(t, err)
	assert.Equal(t, 10, got.Value)

	err = Write(rec, "Companion.Name", 3, ModeAssign)
	require.ErrorIs(t, err, record.ErrTypeMismatch)
}

func TestWriteOp_InvalidMode(t *testing.T) {
	err := WriteOp(newHero(), "Gold", 1, "*=")
	require.ErrorIs(t, err, ErrInvalidMode)
}

func TestWrite_CombineIntoTypedSlotsNeverWrapsOrTruncates(t *testing.T) {
	type gauge struct {
		HP    int
		Level uint8
		Tier  int8
	}

	g := &gauge{HP: 2, Level: 250, Tier: -100}

	err := Write(g, "HP", 1.5, ModeAdd)
	require.ErrorIs(t, err, record.ErrTypeMismatch)
	require.ErrorIs(t, err, primitive.ErrInexact)

	err = Write(g, "Level", 10, ModeAdd)
	require.ErrorIs(t, err, ErrUnsupportedOperator)
	require.ErrorIs(t, err, primitive.ErrOverflow)

	err = Write(g, "Level", 251, ModeSubtract)
	require.ErrorIs(t, err, primitive.ErrOverflow)

	err = Write(g, "Tier", 100, ModeSubtract)
	require.ErrorIs(t, err, primitive.ErrOverflow)

	err = Write(g, "Level", 300, ModeAssign)
	require.ErrorIs(t, err, record.ErrTypeMismatch)

	assert.Equal(t, gauge{HP: 2, Level: 250, Tier: -100}, *g, "failed writes leave the record untouched")

	require.NoError(t, Write(g, "HP", 1.0, ModeAdd))
	require.NoError(t, Write(g, "Level", 5, ModeAdd))
	require.NoError(t, Write(g, "Tier", 28, ModeSubtract))
	assert.Equal(t, gauge{HP: 3, Level: 255, Tier: -128}, *g)
}

func TestWrite_AppendOverflowingElementFails(t *testing.T) {
	rec := record.NewMap("Dice", []int8{4, 6})

	err := Write(rec, "Dice", []any{8, 300}, ModeAdd)
	require.ErrorIs(t, err, ErrUnsupportedOperator)

	got, err := Read(rec, "Dice")
	require.NoError(t, err)
	assert.Equal(t, []int8{4, 6}, got.Value)
}
