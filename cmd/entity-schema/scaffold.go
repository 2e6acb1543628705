package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"entity-schema/internal/analyze"
	"entity-schema/internal/schema"
)

var scaffoldCmd = &cobra.Command{
	Use:   "scaffold <package> <Type>",
	Short: "Derive a schema from a Go struct type",
	Long: `Load a Go package and write a schema declaring every exported field of
a struct type. Pointer fields and fields tagged omitempty become Optional,
the rest Mandatory. Slices of structs are declared through [*].

Examples:
  entity-schema scaffold ./bestiary Creature
  entity-schema scaffold ./bestiary Stats --name stats --extends creature
  entity-schema scaffold ./bestiary Creature --list`,
	Args: cobra.ExactArgs(2),
	RunE: runScaffold,
}

var scaffoldOpts struct {
	name    string
	extends []string
	depth   int
	list    bool
	stdout  bool
	force   bool
}

func init() {
	rootCmd.AddCommand(scaffoldCmd)

	flags := scaffoldCmd.Flags()
	flags.StringVar(&scaffoldOpts.name, "name", "", "schema name (default: the type name in lower case)")
	flags.StringSliceVar(&scaffoldOpts.extends, "extends", nil, "schemas the new schema extends")
	flags.IntVar(&scaffoldOpts.depth, "depth", analyze.DefaultMaxDepth, "maximum struct nesting to descend")
	flags.BoolVar(&scaffoldOpts.list, "list", false, "list derived paths with their Go types instead of writing a schema")
	flags.BoolVar(&scaffoldOpts.stdout, "stdout", false, "print the schema instead of writing it")
	flags.BoolVar(&scaffoldOpts.force, "force", false, "overwrite an existing schema file")
}

func runScaffold(cmd *cobra.Command, args []string) error {
	pattern, typeName := args[0], args[1]

	analyzer := analyze.NewAnalyzer("")
	if _, err := analyzer.LoadPackages(pattern); err != nil {
		return err
	}

	root, err := analyzer.FindStruct(typeName)
	if err != nil {
		return err
	}

	logger.Debug().Str("type", root.ID.String()).Int("fields", len(root.Fields)).Msg("struct loaded")

	if scaffoldOpts.list {
		return listFields(cmd, root)
	}

	name := scaffoldOpts.name
	if name == "" {
		name = strings.ToLower(typeName)
	}

	n, err := analyze.Scaffold(name, root, scaffoldOpts.depth)
	if err != nil {
		return err
	}

	n.Extends = scaffoldOpts.extends

	if scaffoldOpts.stdout {
		data, err := schema.Marshal(n)
		if err != nil {
			return err
		}

		_, err = out(cmd).Write(data)

		return err
	}

	path := filepath.Join(cfg.SchemaDir, n.Name+".yaml")
	if _, err := os.Stat(path); err == nil && !scaffoldOpts.force {
		return fmt.Errorf("schema file %s already exists (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if err := os.MkdirAll(cfg.SchemaDir, 0o755); err != nil {
		return fmt.Errorf("failed to create schema directory %s: %w", cfg.SchemaDir, err)
	}

	if err := schema.WriteFile(n, cfg.SchemaDir); err != nil {
		return err
	}

	logger.Info().Str("schema", n.Name).Str("file", path).
		Int("mandatory", len(n.Mandatory)).Int("optional", len(n.Optional)).
		Msg("schema written")

	fmt.Fprintln(out(cmd), path)

	return nil
}

func listFields(cmd *cobra.Command, root *analyze.TypeInfo) error {
	tw := tabwriter.NewWriter(out(cmd), 0, 4, 2, ' ', 0)

	for _, f := range analyze.FieldPaths(root, scaffoldOpts.depth) {
		presence := "mandatory"
		if f.Optional {
			presence = "optional"
		}

		fmt.Fprintf(tw, "%s\t%s\t%s\n", f.Path, analyze.TypeString(f.Type), presence)
	}

	return tw.Flush()
}
