package commands

import (
	"fmt"

	"github.com/jhoicas/gestor-tienda/internal/infrastructure/postgres"
	"github.com/jhoicas/gestor-tienda/pkg/config"
	"github.com/jhoicas/gestor-tienda/pkg/logger"
)

// RunMigrations aplica las migraciones embebidas sobre PostgreSQL.
func RunMigrations(log *logger.Logger, cfg *config.Config) error {
	if cfg.Storage != config.StoragePostgres {
		return fmt.Errorf("migrate requiere STORAGE=%s (actual: %s)", config.StoragePostgres, cfg.Storage)
	}
	log.Info().Str("db", cfg.DB.DBName).Msg("aplicando migraciones")
	return postgres.Migrate(cfg.DB.ConnectionString(), log)
}
