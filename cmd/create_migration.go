package cmd

import (
	"fmt"
	"regexp"

	"todo-service/config"
	"todo-service/database"

	"github.com/spf13/cobra"
)

var migrationNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

func newCreateMigrationCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var name, dir string

	cmd := &cobra.Command{
		Use:   "create-migration",
		Short: "Create an empty, timestamped migration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !migrationNamePattern.MatchString(name) {
				return fmt.Errorf("invalid migration name %q: use letters, digits and underscores", name)
			}
			if dir == "" {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				dir = cfg.Database.MigrationsDir
			}

			database.CreateMigration(name, dir)
			cmd.Printf("Created migration %s in %s\n", name, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "migration name (letters, digits, underscores)")
	cmd.Flags().StringVar(&dir, "dir", "", "target directory, overrides DB_MIGRATIONS_DIR")
	cmd.MarkFlagRequired("name")
	return cmd
}
