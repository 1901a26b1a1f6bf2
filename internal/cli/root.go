package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/St1cky1/flight-planner/internal/config"
	"github.com/St1cky1/flight-planner/internal/identicon"
	"github.com/St1cky1/flight-planner/internal/infrastructure/client"
	"github.com/St1cky1/flight-planner/internal/infrastructure/storage"
	"github.com/St1cky1/flight-planner/internal/repository"
	"github.com/St1cky1/flight-planner/internal/usecase"
)

var noEvents bool

// rootCmd - avatarctl, обслуживание аватарок сотрудников
var rootCmd = &cobra.Command{
	Use:   "avatarctl",
	Short: "Maintenance tool for employee avatars",
	Long: `avatarctl manages employee avatars outside the HTTP API.

Storage, database and RabbitMQ settings are read from the same
environment variables (and .env file) as the server.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noEvents, "no-events", false, "Do not publish avatar events to RabbitMQ")

	rootCmd.AddCommand(identiconCmd)
	rootCmd.AddCommand(purgeCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
}

// env - то, что открывается для команд, работающих с хранилищем
type env struct {
	cfg     *config.Config
	pg      *client.PostgresClient
	avatars *usecase.AvatarService
	closers []func() error
}

func (e *env) Close() {
	if e.avatars != nil {
		e.avatars.WaitEvents()
	}
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			log.Printf("⚠️  close: %v", err)
		}
	}
}

func (e *env) database(ctx context.Context) (*client.PostgresClient, error) {
	if e.pg != nil {
		return e.pg, nil
	}
	pg, err := client.NewPostgresClient(ctx, e.cfg.DB.DSN())
	if err != nil {
		return nil, err
	}
	e.pg = pg
	e.closers = append(e.closers, func() error { pg.Close(); return nil })
	return pg, nil
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg}

	var db repository.DBTX
	if cfg.AvatarStorage == config.StoragePostgres {
		pg, err := e.database(ctx)
		if err != nil {
			e.Close()
			return nil, err
		}
		db = pg.Pool
	}

	store, closeStore, err := storage.OpenAvatarStore(ctx, cfg, db)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append(e.closers, closeStore)

	var publisher usecase.AvatarEventPublisher
	if !noEvents {
		rabbitMQ, err := client.NewRabbitMQClient(cfg.RabbitMQURL)
		if err != nil {
			log.Printf("⚠️  RabbitMQ недоступен, события не отправляются: %v", err)
		} else {
			publisher = rabbitMQ
			e.closers = append(e.closers, rabbitMQ.Close)
		}
	}

	e.avatars = usecase.NewAvatarService(store, identicon.New(), publisher)
	return e, nil
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
