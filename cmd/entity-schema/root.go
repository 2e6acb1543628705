package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"entity-schema/internal/config"
	"entity-schema/internal/record"
)

var (
	cfg    config.Config
	logger = zerolog.Nop()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "entity-schema",
	Short: "Validate entity records against layered schemas",
	Long: `entity-schema validates records against a directory of schema files
and reads or updates record fields with path expressions.

Paths:
  Name                     a key or public member
  Stats.Strength           nested access
  Skills[0].Rank           sequence element
  Skills[*].Rank           every element
  Stats[Strength|Agility]  several keys at once

Settings come from ENTITY_* environment variables; flags override them.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("schemas", "", "schema directory (ENTITY_SCHEMA_DIR)")
	flags.String("records", "", "record directory (ENTITY_RECORD_DIR)")
	flags.String("format", "", "record file extension: .yaml, .yml or .bson (ENTITY_RECORD_FORMAT)")
	flags.String("log-level", "", "log level (ENTITY_LOG_LEVEL)")
	flags.String("log-format", "", "log format: console or json (ENTITY_LOG_FORMAT)")
}

// setup loads the environment, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	overrides := map[string]*string{
		"schemas":    &loaded.SchemaDir,
		"records":    &loaded.RecordDir,
		"format":     &loaded.RecordFormat,
		"log-level":  &loaded.LogLevel,
		"log-format": &loaded.LogFormat,
	}

	for name, dst := range overrides {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}

	cfg = loaded

	logger, err = config.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	return nil
}

func openStore() (*record.Store, error) {
	return record.NewStore(cfg.RecordDir, cfg.RecordFormat)
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
