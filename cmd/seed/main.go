package main

import (
	"context"
	"flag"
	"time"

	"jobni/internal/config"
	"jobni/internal/database/migration"
	dbpostgres "jobni/internal/database/postgres"
	"jobni/internal/database/seeder"
	"jobni/internal/observability"
	"jobni/migrations"

	"github.com/rs/zerolog/log"
)

func main() {
	adminEmail := flag.String("admin-email", "", "admin account email")
	adminPassword := flag.String("admin-password", "", "admin account password")
	adminName := flag.String("admin-name", "Administrator", "admin display name")
	demo := flag.Bool("demo", false, "also seed a demo employer, seeker and jobs")
	migrationsDir := flag.String("migrations-dir", "", "read migrations from disk instead of the embedded set")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	observability.InitLogger(cfg.App.AppName+"-seed", cfg.App.Environment, cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{Dir: *migrationsDir, FS: migrations.FS}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	if *adminEmail == "" {
		log.Info().Msg("no -admin-email given, migrations only")
		return
	}

	runner := seeder.Runner{Seeders: seeder.Defaults(seeder.AdminSeeder{
		DisplayName: *adminName,
		Email:       *adminEmail,
		Password:    *adminPassword,
	}, *demo)}
	if err := runner.Run(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("admin", *adminEmail).Bool("demo", *demo).Msg("seed complete")
}
