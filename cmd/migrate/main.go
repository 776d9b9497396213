// migrate aplica las migraciones SQL embebidas sobre la base configurada y termina.
//
// Uso: go run ./cmd/migrate
// Lee la conexión de DATABASE_URL o de DB_HOST/DB_PORT/... igual que la API.
package main

import (
	"context"
	"os"
	"time"

	"github.com/jhoicas/Inventario-recetas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-recetas/pkg/config"
	"github.com/jhoicas/Inventario-recetas/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Named("migrate")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("conexión a PostgreSQL")
		os.Exit(1)
	}
	defer pool.Close()

	applied, err := postgres.Migrate(ctx, pool)
	if err != nil {
		log.Error().Err(err).Msg("aplicar migraciones")
		os.Exit(1)
	}
	if len(applied) == 0 {
		log.Info().Msg("base de datos al día")
		return
	}
	for _, name := range applied {
		log.Info().Str("file", name).Msg("migración aplicada")
	}
}
