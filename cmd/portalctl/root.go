package main

import (
	"context"
	"fmt"

	"github.com/2beens/coachportal/internal/config"
	"github.com/2beens/coachportal/internal/db"
	"github.com/2beens/coachportal/internal/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	env        string
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:          "portalctl",
		Short:        "Coach portal admin tool",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logging.Setup(logging.LoggerSetupParams{
				LogToStdout: true,
				LogLevel:    flags.logLevel,
			})
		},
	}

	cmd.PersistentFlags().StringVar(&flags.env, "env", "development", "environment [prod | production | dev | development]")
	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "./config.toml", "path for the TOML config file")
	cmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "info", "log level")

	cmd.AddCommand(
		hashPasswordCmd(),
		userCmd(flags),
		seedCmd(flags),
	)
	return cmd
}

// connect opens the pool described by the config file and the environment.
func connect(ctx context.Context, flags *globalFlags) (*pgxpool.Pool, error) {
	cfg, err := config.Load(flags.env, flags.configPath)
	if err != nil {
		return nil, err
	}
	secrets, err := config.LoadSecrets()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBUser:     cfg.PostgresUser,
		DBPassword: secrets.PostgresPassword,
		DBName:     cfg.PostgresDBName,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return dbPool, nil
}
