package fieldpath

import "entity-schema/internal/record"

type attributes struct {
	Strength int
	Agility  int
	secret   string
}

type character struct {
	Name   string
	Attrs  attributes
	Tags   []string
	hidden int
}

// newHero builds a record mixing mappings, sequences and an object.
func newHero() *record.Map {
	return record.NewMap(
		"Name", "Aria",
		"Stats", record.NewMap("Strength", 5, "Agility", 7, "Luck", 1),
		"Skills", []any{
			record.NewMap("Name", "Sword", "Rank", 3),
			record.NewMap("Name", "Bow", "Rank", 1),
			record.NewMap("Name", "Stealth", "Rank", 2),
		},
		"Grid", []any{[]any{1, 2}, []any{3, 4}},
		"Companion", &character{Name: "Rook", Attrs: attributes{Strength: 9, Agility: 2}, Tags: []string{"loyal"}},
		"Gold", 120,
		"Empty", []any{},
	)
}
