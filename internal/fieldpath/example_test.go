package fieldpath_test

import (
	"fmt"

	"entity-schema/internal/fieldpath"
	"entity-schema/internal/record"
)

func Example() {
	hero := record.NewMap(
		"Stats", record.NewMap("HP", 30, "MP", 12),
		"Skills", []any{
			record.NewMap("Name", "Sword", "Rank", 2),
			record.NewMap("Name", "Bow", "Rank", 1),
		},
	)

	res := fieldpath.Exists(hero, "Stats[HP|SP]")
	fmt.Println(res.Found)
	fmt.Println(res.Diagnostics.Errors[0].Code, res.Diagnostics.Errors[0].Label)

	if err := fieldpath.Write(hero, "Skills[*].Rank", 1, fieldpath.ModeAdd); err != nil {
		panic(err)
	}

	ranks, err := fieldpath.Read(hero, "Skills[*].Rank")
	if err != nil {
		panic(err)
	}

	fmt.Println(ranks.Interface())

	// Output:
	// [Stats.HP]
	// missing_key Stats.SP
	// [3 2]
}
