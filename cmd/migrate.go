package cmd

import (
	"todo-service/config"
	"todo-service/database"
	"todo-service/server"

	"github.com/spf13/cobra"
	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

func newMigrateCommand(loadConfig func() (*config.Config, error)) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Database.MigrationsDir
			}

			server.InitLogger()
			dbConn, err := database.Connect(cfg.Database)
			if err != nil {
				return err
			}
			defer dbConn.Close()

			if err := database.Migrate(dbConn, dir); err != nil {
				return err
			}
			logger.Info("Migrations applied", zap.String("dir", dir))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory, overrides DB_MIGRATIONS_DIR")
	return cmd
}
