package config

import "time"

type Config struct {
	AppName                       string   `env:"APP_NAME" env-default:"fern-api"`
	Environment                   string   `env:"ENVIRONMENT" env-default:"local"`
	Version                       string   `env:"VERSION" env-default:"dev"`
	Port                          int      `env:"PORT" env-default:"3003"`
	MetricsPort                   int      `env:"METRICS_PORT" env-default:"9090"`
	LogLevel                      string   `env:"LOG_LEVEL" env-default:"info"`
	HttpServerWriteTimeoutSeconds int      `env:"HTTP_SERVER_WRITE_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerReadTimeoutSeconds  int      `env:"HTTP_SERVER_READ_TIMEOUT_SECONDS" env-default:"10"`
	HttpServerIdleTimeoutSeconds  int      `env:"HTTP_SERVER_IDLE_TIMEOUT_SECONDS" env-default:"10"`
	AllowOrigins                  []string `env:"HTTP_SERVER_ALLOW_ORIGINS" env-default:"*"`
	AllowMethods                  []string `env:"HTTP_SERVER_ALLOW_METHODS" env-default:"GET,POST,PUT,DELETE"`
	StartupMaxAttempts            int      `env:"STARTUP_MAX_ATTEMPTS" env-default:"5"`

	// Tracing
	TracingEnabled  bool   `env:"TRACING_ENABLED" env-default:"false"`
	TracingEndpoint string `env:"TRACING_ENDPOINT" env-default:"localhost:4317"`

	// PostgreSQL (interaction store)
	DatabaseHost                  string        `env:"DB_HOST" env-default:"localhost"`
	DatabasePort                  int           `env:"DB_PORT" env-default:"5432"`
	DatabaseUserName              string        `env:"DB_USER_NAME" env-default:""`
	DatabasePassword              string        `env:"DB_PASSWORD" env-default:""`
	DatabaseName                  string        `env:"DB_NAME" env-default:"fern"`
	DatabaseSSLMode               string        `env:"DB_SSL_MODE" env-default:"disable"`
	DatabaseMaxOpenConns          int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	DatabaseMaxIdleConns          int           `env:"DB_MAX_IDLE_CONNS" env-default:"10"`
	DatabaseConnMaxLifetime       time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"10s"`
	DatabaseMigrationFolderPath   string        `env:"DB_MIGRATION_FOLDER_PATH" env-default:"db/pg"`
	DatabaseMigrationAutoRollback bool          `env:"DB_MIGRATION_AUTO_ROLLBACK" env-default:"true"`

	// Redis (churn metrics cache)
	RedisEnabled  bool          `env:"REDIS_ENABLED" env-default:"true"`
	RedisHost     string        `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     int           `env:"REDIS_PORT" env-default:"6379"`
	RedisPassword string        `env:"REDIS_PASSWORD" env-default:""`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	RedisCacheTTL time.Duration `env:"REDIS_CACHE_TTL" env-default:"1h"`

	// Google Sheets (order book source)
	SheetsBaseURL           string `env:"SHEETS_BASE_URL" env-default:"https://sheets.googleapis.com"`
	SheetsAPIKey            string `env:"SHEETS_API_KEY" env-default:""`
	SheetsSpreadsheetID     string `env:"SHEETS_SPREADSHEET_ID" env-default:""`
	SheetsOrdersRange       string `env:"SHEETS_ORDERS_RANGE" env-default:"Orders!A:W"`
	SheetsInteractionsRange string `env:"SHEETS_INTERACTIONS_RANGE" env-default:"Interactions!A:F"`

	// Snapshot refresh loop
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" env-default:"15m"`

	// Kafka Producer settings
	KafkaEnabled       bool     `env:"KAFKA_ENABLED" env-default:"true"`
	KafkaBrokers       []string `env:"KAFKA_BROKERS" env-default:"localhost:9092"`
	KafkaSnapshotTopic string   `env:"KAFKA_SNAPSHOT_TOPIC" env-default:"snapshot-events"`
	KafkaChurnTopic    string   `env:"KAFKA_CHURN_TOPIC" env-default:"churn-alerts"`
	KafkaBatchSize     int      `env:"KAFKA_BATCH_SIZE" env-default:"100"`
	KafkaBatchTimeout  int      `env:"KAFKA_BATCH_TIMEOUT_MS" env-default:"100"`
	KafkaRequiredAcks  int      `env:"KAFKA_REQUIRED_ACKS" env-default:"1"`
	KafkaCompression   string   `env:"KAFKA_COMPRESSION" env-default:"snappy"`
}
