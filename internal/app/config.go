package app

// StorageDriver задаёт реализацию хранилища заказов.
type StorageDriver string

const (
	// StorageDriverMemory — in-memory хранилище для разработки и тестов.
	StorageDriverMemory StorageDriver = "memory"
	// StorageDriverPostgres — PostgreSQL-хранилище.
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// MetricsAddr — адрес HTTP-сервера метрик и health-проверок.
	MetricsAddr string
	// StorageDriver выбирает реализацию хранилища.
	StorageDriver StorageDriver
	// PostgresDSN обязателен при StorageDriverPostgres.
	PostgresDSN string
	// PostgresAutoMigrate применяет миграции при старте.
	PostgresAutoMigrate bool
}

// DefaultConfig возвращает базовые настройки приложения.
func DefaultConfig() Config {
	return Config{
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
	}
}
