// Package bestiary holds typed creature records. The schema scaffolder and
// the validator tests use it as an in-module source of struct-backed records.
package bestiary

import (
	"time"
)

// Element is the damage type of a skill.
type Element string

const (
	ElementNone  Element = ""
	ElementFire  Element = "fire"
	ElementFrost Element = "frost"
	ElementVoid  Element = "void"
)

// Stats are the numeric attributes every creature has.
type Stats struct {
	HP       int
	MP       int `yaml:",omitempty"`
	Strength int
	Agility  int
}

// Skill is one learned ability.
type Skill struct {
	Name    string
	Rank    int
	Element Element
}

// Lineage is embedded so its members read as the creature's own.
type Lineage struct {
	Family string
	Origin string `yaml:",omitempty"`
}

// Creature is a full creature record.
type Creature struct {
	Lineage

	Name      string
	Level     int
	Stats     Stats
	Skills    []Skill
	Tags      []string
	Loot      map[string]int `yaml:",omitempty"`
	Companion *Creature
	SpawnedAt time.Time
	Notes     string `yaml:"-"`

	seen int
}

// Goblin returns a small, fully populated creature.
func Goblin() *Creature {
	return &Creature{
		Lineage: Lineage{Family: "goblinoid"},
		Name:    "Snag",
		Level:   2,
		Stats:   Stats{HP: 7, Strength: 3, Agility: 5},
		Skills: []Skill{
			{Name: "Stab", Rank: 1},
			{Name: "Firebomb", Rank: 2, Element: ElementFire},
		},
		Tags:      []string{"sneaky"},
		SpawnedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Seen reports how many times the creature has been encountered.
func (c *Creature) Seen() int {
	return c.seen
}

// Encounter records one more encounter.
func (c *Creature) Encounter() {
	c.seen++
}
