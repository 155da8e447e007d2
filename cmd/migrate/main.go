// migrate aplica las migraciones SQL embebidas.
//
// Uso: go run ./cmd/migrate [up|down|status]   (por defecto: up)
package main

import (
	"context"
	"os"

	"github.com/jhoicas/FireSafety-api/internal/infrastructure/postgres"
	"github.com/jhoicas/FireSafety-api/pkg/config"
	"github.com/jhoicas/FireSafety-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	command := postgres.MigrateUp
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool, command, log); err != nil {
		log.Error().Err(err).Str("command", command).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("command", command).Msg("migración completada")
}
