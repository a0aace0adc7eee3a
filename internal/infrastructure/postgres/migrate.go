package postgres

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const migrationsDir = "migrations"

// Migrate aplica con goose los scripts de migrations/ pendientes. goose lleva el registro
// en goose_db_version y corre cada script en su propia transacción.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if err := useEmbeddedMigrations(); err != nil {
		return err
	}
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	log.Info().Int64("version", version).Msg("esquema actualizado")
	return nil
}

func useEmbeddedMigrations() error {
	goose.SetBaseFS(migrationFiles)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	return nil
}

// gooseLogger redirige la salida de goose a zerolog.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...any) { log.Info().Msgf(format, v...) }
func (gooseLogger) Fatalf(format string, v ...any) { log.Fatal().Msgf(format, v...) }
