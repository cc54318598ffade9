package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sharespace/internal/app"
	"sharespace/internal/config"
	"sharespace/internal/platform/logger"
	mongoClient "sharespace/internal/platform/mongo"
	"sharespace/internal/repository"
	"sharespace/internal/seed"
)

func main() {
	if err := newSeedCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newSeedCmd() *cobra.Command {
	var opts seed.Options
	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "Create demo ShareSpace accounts",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Count, "count", "n", 10, "number of users to create")
	cmd.Flags().StringVar(&opts.Password, "password", seed.DefaultPassword, "password for every demo user")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "random seed, 0 for a random run")
	cmd.Flags().BoolVar(&opts.WithPictures, "pictures", true, "give every other user a profile picture")
	return cmd
}

func run(cmd *cobra.Command, opts seed.Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.IsProduction() {
		return fmt.Errorf("refusing to seed a %s environment", cfg.App.Env)
	}

	log, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoCli, err := mongoClient.New(ctx, cfg.Mongo.URI, cfg.MongoConnectTimeout(), log.Named("mongo"))
	if err != nil {
		return err
	}
	defer func() { _ = mongoCli.Disconnect(context.Background()) }()

	users := repository.NewUserRepository(mongoCli.Database(cfg.Mongo.Database))
	if err := users.EnsureIndexes(ctx); err != nil {
		return err
	}

	auth := app.NewAuthService(users, app.AuthServiceConfig{
		JWTSecret:     cfg.Auth.JWTSecret,
		JWTExpiration: cfg.TokenTTL(),
		BcryptCost:    cfg.Auth.BcryptCost,
	}, nil, log.Named("auth"))
	profiles := app.NewUserService(users, nil, nil, log.Named("user"))

	report, err := seed.NewSeeder(auth, profiles, log.Named("seed")).Run(ctx, opts)
	if err != nil {
		log.Error("seed failed", zap.Error(err))
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "created %d users, skipped %d existing\n", len(report.Created), report.Skipped)
	for _, u := range report.Created {
		fmt.Fprintf(out, "  %s <%s>\n", u.Name, u.Email)
	}
	if len(report.Created) > 0 {
		fmt.Fprintf(out, "password: %s\n", opts.Password)
	}
	return nil
}
