package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"ugc-service/internal/model"
	"ugc-service/internal/repository"
	"ugc-service/internal/seed"
	"ugc-service/pkg/config"
	"ugc-service/pkg/database"
	"ugc-service/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	backfill := flag.Bool("backfill-passwords", false, "set the default password on users that have none")
	fixture := flag.String("fixture", "", "path to a YAML fixture (defaults to the embedded demo data)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()
	defer log.Sync()

	if err := run(context.Background(), cfg, log, *fixture, *backfill); err != nil {
		log.Error("Seeding failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, fixturePath string, backfill bool) error {
	db, err := database.Open(&cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db, model.All()...); err != nil {
		return err
	}

	if backfill {
		n, err := seed.BackfillPasswords(ctx, repository.NewUserRepository(db), seed.DefaultPassword)
		if err != nil {
			return err
		}
		log.Info("Passwords backfilled", zap.Int("users", n))
		return nil
	}

	var f *seed.Fixture
	if fixturePath != "" {
		data, err := os.ReadFile(fixturePath)
		if err != nil {
			return err
		}
		f, err = seed.Load(data)
		if err != nil {
			return err
		}
	} else {
		f, err = seed.Default()
		if err != nil {
			return err
		}
	}

	_, err = seed.New(db, log).Run(ctx, f)
	return err
}
