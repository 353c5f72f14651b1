package app

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/domain"
	"github.com/vladislavdragonenkov/orders/internal/health"
	"github.com/vladislavdragonenkov/orders/internal/storage/memory"
	"github.com/vladislavdragonenkov/orders/internal/storage/postgres"
)

// runtimeDependencies — зависимости, собранные под выбранный storage driver.
type runtimeDependencies struct {
	repo  domain.OrderRepository
	store *postgres.Store
}

// initRuntimeDependencies собирает хранилище согласно конфигурации.
// Для postgres при включённом PostgresAutoMigrate применяются миграции.
func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		logger.Info("используем in-memory хранилище заказов")
		return &runtimeDependencies{repo: memory.NewOrderRepository()}, nil

	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, fmt.Errorf("postgres dsn is required for storage driver %q", cfg.StorageDriver)
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}

		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			logger.Info("миграции postgres применены")
		}

		return &runtimeDependencies{
			repo:  postgres.NewOrderRepository(store),
			store: store,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %q", cfg.StorageDriver)
	}
}

// registerHealthCheckers подключает проверку хранилища к health handler.
func (d *runtimeDependencies) registerHealthCheckers(handler *health.Handler) {
	if d.store == nil {
		return
	}
	store := d.store
	handler.RegisterChecker("postgres", health.NewSimpleChecker("postgres", func() error {
		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return store.Ping(ctx)
	}))
}

// Close освобождает ресурсы хранилища.
func (d *runtimeDependencies) Close() error {
	if d == nil || d.store == nil {
		return nil
	}
	return d.store.Close()
}
