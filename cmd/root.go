package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Dresse/eksponent-test/cmd/importer"
	"github.com/Dresse/eksponent-test/cmd/schedule"
	"github.com/Dresse/eksponent-test/internal/conf"
)

// RootCommand creates and returns the root command
func RootCommand(settings *conf.Settings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "eksponent-events",
		Short: "Eksponent events importer",
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, settings)

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		importer.Command(settings),
		schedule.Command(settings),
	}
	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

// setupFlags configures the persistent flags shared by all subcommands.
func setupFlags(rootCmd *cobra.Command, settings *conf.Settings) {
	rootCmd.PersistentFlags().BoolVar(&settings.Debug, "debug", settings.Debug,
		"Enable debug output")
	rootCmd.PersistentFlags().StringVar(&settings.Import.SourceURL, "source-url", settings.Import.SourceURL,
		"URL of the remote events API")
	rootCmd.PersistentFlags().StringVar(&settings.Import.ImageDir, "image-dir", settings.Import.ImageDir,
		"Directory where imported event images are written")
}
