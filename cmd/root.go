package cmd

import (
	"fmt"
	"os"

	"todo-service/config"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the todo-service CLI
func NewRootCommand() *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "todo-service",
		Short: "To-do list REST API",
		Long: `todo-service serves a REST API for users, to-do lists and tasks
protected by HTTP Basic authentication.

Configuration is read from an optional YAML file, a .env file and the
environment, in that order.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file (optional)")

	loadConfig := func() (*config.Config, error) {
		return config.Load(configFile)
	}

	rootCmd.AddCommand(newServeCommand(loadConfig))
	rootCmd.AddCommand(newMigrateCommand(loadConfig))
	rootCmd.AddCommand(newCreateMigrationCommand(loadConfig))

	return rootCmd
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
