package schedule

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dresse/eksponent-test/internal/conf"
	"github.com/Dresse/eksponent-test/internal/datastore"
	"github.com/Dresse/eksponent-test/internal/events"
)

// Command creates the schedule command that runs the import periodically.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run the events import on a fixed interval",
		Long:  `Import events immediately and then on every poll interval until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The flag writes into the settings after config validation ran.
			if settings.Import.PollInterval <= 0 {
				return fmt.Errorf("import poll interval must be positive, got %d", settings.Import.PollInterval)
			}

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

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			stopChan := make(chan struct{})
			go func() {
				<-sigChan
				close(stopChan)
			}()

			service.StartPolling(stopChan)
			return nil
		},
	}

	cmd.Flags().IntVar(&settings.Import.PollInterval, "interval", settings.Import.PollInterval,
		"Poll interval in minutes")

	return cmd
}
