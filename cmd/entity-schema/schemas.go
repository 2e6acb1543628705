package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"entity-schema/internal/graph"
	"entity-schema/internal/schema"
)

var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas in validation order with their hierarchy",
	Long: `Load the schema directory and list every schema parents first, with
the schemas it extends, when it is required, and the schemas that extend it.

Examples:
  entity-schema schemas
  entity-schema schemas --schemas ./schemas`,
	Args: cobra.NoArgs,
	RunE: runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
}

func runSchemas(cmd *cobra.Command, _ []string) error {
	reg, err := schema.LoadDir(cfg.SchemaDir)
	if err != nil {
		return err
	}

	plan, err := reg.Plan()
	if err != nil {
		return err
	}

	return printHierarchy(out(cmd), reg, plan)
}

func printHierarchy(w io.Writer, reg *schema.Registry, plan *schema.Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	children := plan.Graph.Reverse()

	for _, name := range plan.Order {
		n, ok := reg.Get(name)
		if !ok {
			continue
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, parentage(n, plan.Graph), requirement(n.Required), listOrDash(children[name]))
	}

	return tw.Flush()
}

func parentage(n *schema.Node, g *graph.Graph) string {
	if n.Extends.IsEmpty() {
		return "root"
	}

	return "extends " + strings.Join(g.Parents(n.Name), ", ")
}

func requirement(r schema.Requirement) string {
	switch {
	case r.IsZero():
		return "optional"
	case r.Always:
		return "required"
	default:
		return "required when " + strings.Join(r.When, " or ")
	}
}

func listOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}

	return strings.Join(items, ", ")
}
