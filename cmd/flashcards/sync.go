package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/flashcards/internal/bootstrap"
	"github.com/at-ishikawa/flashcards/internal/datasync"
)

type storageDriver string

func (d *storageDriver) Set(val string) error {
	if !slices.Contains(allStorageDrivers, storageDriver(val)) {
		return fmt.Errorf("invalid storage driver: %s", val)
	}
	*d = storageDriver(val)
	return nil
}

func (d storageDriver) String() string {
	return string(d)
}

func (d *storageDriver) Type() string {
	return "driver"
}

var (
	_                 pflag.Value = (*storageDriver)(nil)
	allStorageDrivers             = []storageDriver{bootstrap.DriverFile, bootstrap.DriverMySQL}
)

func newSyncCommand() *cobra.Command {
	from := storageDriver(bootstrap.DriverFile)
	to := storageDriver(bootstrap.DriverMySQL)
	var dryRun bool
	var updateExisting bool

	command := &cobra.Command{
		Use:   "sync",
		Short: "Copy the cards from one storage to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if from == to {
				return fmt.Errorf("--from and --to must be different, both are %s", from)
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			app := bootstrap.New()
			return app.Run(cmd.Context(), func(ctx context.Context) error {
				paths := bootstrap.NewPaths(cfg)
				if err := paths.MkdirAll(); err != nil {
					return fmt.Errorf("paths.MkdirAll() > %w", err)
				}
				source, err := bootstrap.OpenStores(ctx, app, cfg, paths, string(from))
				if err != nil {
					return fmt.Errorf("bootstrap.OpenStores(%s) > %w", from, err)
				}
				destination, err := bootstrap.OpenStores(ctx, app, cfg, paths, string(to))
				if err != nil {
					return fmt.Errorf("bootstrap.OpenStores(%s) > %w", to, err)
				}

				output := cmd.OutOrStdout()
				result, err := datasync.NewSyncer(source.Cards, destination.Cards, output).Sync(ctx, datasync.Options{
					DryRun:         dryRun,
					UpdateExisting: updateExisting,
				})
				if err != nil {
					return fmt.Errorf("syncer.Sync() > %w", err)
				}

				fmt.Fprintln(output, "\nSync Summary:")
				if dryRun {
					fmt.Fprintln(output, "  (dry-run mode, no changes made)")
				}
				result.Write(output)
				return nil
			})
		},
	}

	command.Flags().Var(&from, "from", fmt.Sprintf("Source storage. Possible values are %v", allStorageDrivers))
	command.Flags().Var(&to, "to", fmt.Sprintf("Destination storage. Possible values are %v", allStorageDrivers))
	command.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing the destination")
	command.Flags().BoolVar(&updateExisting, "update-existing", false, "Replace cards that already exist in the destination")
	return command
}
