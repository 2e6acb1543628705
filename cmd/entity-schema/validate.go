package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"entity-schema/internal/diagnostic"
	"entity-schema/internal/record"
	"entity-schema/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [record...]",
	Short: "Validate records against the schema directory",
	Long: `Validate named records against every schema in the schema directory.

With no arguments every record in the record directory is validated.
The command fails if any record is invalid. With --watch (or
ENTITY_WATCH=true) it keeps running and re-validates every record
whenever the schema directory changes.

Examples:
  entity-schema validate
  entity-schema validate "Aria the Bold" goblin
  entity-schema validate --schemas ./schemas --records ./npcs --quiet`,
	RunE: runValidate,
}

var (
	validateQuiet bool
	validateWatch bool
)

// errInvalid reports that at least one record failed validation.
var errInvalid = errors.New("validation failed")

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().BoolVarP(&validateQuiet, "quiet", "q", false, "only print the status line of each record")
	validateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "keep running and re-validate on schema changes (ENTITY_WATCH)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("watch") {
		cfg.Watch = validateWatch
	}

	if cfg.Watch {
		if len(args) > 0 {
			return errors.New("--watch validates every record; drop the record names")
		}

		return runWatch(cmd, nil)
	}

	reg, err := schema.LoadDir(cfg.SchemaDir)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		if names, err = store.Names(); err != nil {
			return err
		}
	}

	v := schema.NewValidator(reg, schema.WithLogger(logger))

	ok, err := validateAll(out(cmd), v, store, names, validateQuiet)
	if err != nil {
		return err
	}

	if !ok {
		return errInvalid
	}

	return nil
}

// validateAll validates each named record and prints a report. It returns
// false if any record is invalid.
func validateAll(w io.Writer, v *schema.Validator, store *record.Store, names []string, quiet bool) (bool, error) {
	allValid := true

	for _, name := range names {
		rec, err := store.Load(name)
		if err != nil {
			return false, err
		}

		outcome, err := v.Validate(rec)
		if err != nil {
			return false, err
		}

		if outcome.Status != schema.StatusValid {
			allValid = false
		}

		printOutcome(w, name, outcome, quiet)
	}

	return allValid, nil
}

func printOutcome(w io.Writer, name string, o *schema.Outcome, quiet bool) {
	fmt.Fprintf(w, "%s: %s\n", name, o.Status)

	if quiet {
		return
	}

	printList(w, "implemented", o.ImplementedSchemas)
	printList(w, "dropped", o.DroppedSchemas)
	printList(w, "defined", o.DefinedFields)
	printList(w, "undefined", o.UndefinedFields)

	for _, d := range o.Diagnostics.Errors {
		fmt.Fprintf(w, "  error: %s\n", d)
	}

	for _, d := range o.Diagnostics.Warnings {
		if d.Code == diagnostic.CodeUndefinedField && len(d.Suggestions) == 0 {
			continue
		}

		fmt.Fprintf(w, "  warning: %s\n", d)
	}
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(w, "  %s: %s\n", title, strings.Join(items, ", "))
}
