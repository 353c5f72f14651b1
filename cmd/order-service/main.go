package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orders/internal/app"
)

const (
	envMetricsAddr         = "ORDERS_METRICS_ADDR"
	envStorageDriver       = "ORDERS_STORAGE_DRIVER"
	envPostgresDSN         = "ORDERS_POSTGRES_DSN"
	envPostgresAutoMigrate = "ORDERS_POSTGRES_AUTO_MIGRATE"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения, позволяя
// переопределить настройки через переменные окружения.
func readConfigFromEnv(lookup func(string) (string, bool)) app.Config {
	cfg := app.DefaultConfig()
	if v, ok := lookup(envMetricsAddr); ok && v != "" {
		cfg.MetricsAddr = v
	}
	if v, ok := lookup(envStorageDriver); ok && v != "" {
		cfg.StorageDriver = app.StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}
	if v, ok := lookup(envPostgresDSN); ok && v != "" {
		cfg.PostgresDSN = strings.TrimSpace(v)
	}
	if v, ok := lookup(envPostgresAutoMigrate); ok && v != "" {
		if parsed, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			cfg.PostgresAutoMigrate = parsed
		}
	}
	return cfg
}

func main() {
	setupLogger()
	cfg := readConfigFromEnv(os.LookupEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr":   cfg.MetricsAddr,
		"storage_driver": cfg.StorageDriver,
	}).Info("запускаем сервис заказов")

	if err := app.Run(ctx, cfg, nil); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис заказов остановлен")
}
