package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"entity-schema/internal/fieldpath"
	"entity-schema/internal/record"
	"entity-schema/utils"
)

var existsCmd = &cobra.Command{
	Use:   "exists <record> <path>...",
	Short: "Report which labels each path resolves to",
	Long: `Check paths against a record, reporting every resolved label and every
problem on every branch. Fails if any path has a problem.

Examples:
  entity-schema exists goblin Stats.Strength
  entity-schema exists goblin 'Skills[*].Rank' 'Stats[HP|MP]'`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExists,
}

var getCmd = &cobra.Command{
	Use:   "get <record> <path>",
	Short: "Print the value at a path as YAML",
	Long: `Read the value at a path. Wildcards and alternatives produce one list
level per fan-out point.

Examples:
  entity-schema get goblin Stats.Strength
  entity-schema get goblin 'Skills[*].Name'`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <record> <path>=<value>...",
	Short: "Update fields in place and save the record",
	Long: `Update record fields and save the record. Each assignment is one of:

  path=value    replace the value
  path+=value   add: sum numbers, concatenate strings and lists, merge mappings
  path-=value   subtract: numbers, remove list elements, delete mapping keys

Values are parsed as YAML. Keys are never created; a path that does not
resolve fails and nothing is saved.

Examples:
  entity-schema set goblin Stats.HP-=4
  entity-schema set goblin 'Skills[*].Rank+=1' 'Tags+=[angry]'`,
	Args: cobra.MinimumNArgs(2),
	RunE: runSet,
}

var setDryRun bool

func init() {
	rootCmd.AddCommand(existsCmd, getCmd, setCmd)

	setCmd.Flags().BoolVar(&setDryRun, "dry-run", false, "print the updated record instead of saving it")
}

func loadRecord(name string) (*record.Store, *record.Map, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	rec, err := store.Load(name)
	if err != nil {
		return nil, nil, err
	}

	return store, rec, nil
}

func runExists(cmd *cobra.Command, args []string) error {
	_, rec, err := loadRecord(args[0])
	if err != nil {
		return err
	}

	failed := false

	for _, p := range args[1:] {
		res := fieldpath.Exists(rec, p)

		fmt.Fprintf(out(cmd), "%s:\n", p)

		for _, label := range res.Found {
			fmt.Fprintf(out(cmd), "  found: %s\n", label)
		}

		for _, d := range res.Diagnostics.Errors {
			fmt.Fprintf(out(cmd), "  error: %s\n", d)
		}

		failed = failed || !res.OK()
	}

	if failed {
		return errors.New("some paths did not resolve")
	}

	return nil
}

func runGet(cmd *cobra.Command, args []string) error {
	_, rec, err := loadRecord(args[0])
	if err != nil {
		return err
	}

	tree, err := fieldpath.Read(rec, args[1])
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out(cmd))
	defer enc.Close()

	return enc.Encode(tree.Interface())
}

func runSet(cmd *cobra.Command, args []string) error {
	store, rec, err := loadRecord(args[0])
	if err != nil {
		return err
	}

	for _, arg := range args[1:] {
		path, mode, value, err := parseAssignment(arg)
		if err != nil {
			return err
		}

		if err := fieldpath.Write(rec, path, value, mode); err != nil {
			return err
		}

		logger.Debug().Str("record", args[0]).Str("path", path).Stringer("mode", mode).Msg("field updated")
	}

	if setDryRun {
		data, err := record.EncodeYAML(rec)
		if err != nil {
			return err
		}

		_, err = out(cmd).Write(data)

		return err
	}

	if err := store.Save(args[0], rec); err != nil {
		return err
	}

	logger.Info().Str("record", args[0]).Str("file", store.Path(args[0])).Msg("record saved")

	return nil
}

// parseAssignment splits "path=value", "path+=value" or "path-=value".
func parseAssignment(arg string) (string, fieldpath.Mode, any, error) {
	parts := strings.SplitN(arg, "=", 2)
	if len(parts) != 2 {
		return "", 0, nil, fmt.Errorf("assignment %q: expected path=value", arg)
	}

	path, raw := utils.Unpack2(parts)
	mode := fieldpath.ModeAssign

	if n := len(path); n > 0 {
		if m, err := fieldpath.ParseMode(path[n-1:]); err == nil && m != fieldpath.ModeAssign {
			mode, path = m, path[:n-1]
		}
	}

	value, err := record.DecodeValue([]byte(raw))
	if err != nil {
		return "", 0, nil, fmt.Errorf("assignment %q: %w", arg, err)
	}

	return path, mode, value, nil
}
