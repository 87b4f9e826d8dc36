package importer

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/events"
)

// Command creates the import command for a single import run.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import events from the remote API",
		Long:  `Fetch the events feed once and create or update a stored event per record.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if settings.Debug {
				datastore.SetLogLevel(slog.LevelDebug)
			}

			store := datastore.New(settings)
			if store == nil {
				return fmt.Errorf("no output backend enabled")
			}
			if err := store.Open(); err != nil {
				return fmt.Errorf("failed to open datastore: %w", err)
			}
			defer func() {
				_ = store.Close()
				_ = datastore.CloseLogger()
			}()

			service := events.NewService(settings, store)
			summary := service.RunImport(settings.Import.SourceURL)

			// Per-record failures are logged and counted in the summary;
			// the run itself still completes.
			cmd.Println("Events imported.")
			cmd.Println(summary.String())
			return nil
		},
	}

	return cmd
}
