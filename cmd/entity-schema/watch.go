package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"entity-schema/internal/schema"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-validate every record whenever a schema file changes",
	Long: `Load the schema directory, validate every record once, then keep
watching the schema directory and validate again after each change.
A change that breaks the schema hierarchy is logged and the previous
schemas stay in use. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	holder, err := schema.NewHolder(cfg.SchemaDir, logger)
	if err != nil {
		return err
	}
	defer holder.Stop()

	store, err := openStore()
	if err != nil {
		return err
	}

	revalidate := func(reg *schema.Registry) {
		names, err := store.Names()
		if err != nil {
			logger.Error().Err(err).Msg("list records")
			return
		}

		v := schema.NewValidator(reg, schema.WithLogger(logger))

		ok, err := validateAll(out(cmd), v, store, names, true)
		if err != nil {
			logger.Error().Err(err).Msg("validate records")
			return
		}

		logger.Info().Int("records", len(names)).Bool("valid", ok).Msg("records validated")
	}

	holder.OnChange(revalidate)
	revalidate(holder.Get())

	if err := holder.WatchDir(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	logger.Info().Msg("stopping schema watcher")

	return nil
}
