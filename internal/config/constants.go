package config

import "time"

// Defaults for every setting read by Load
const (
	DefaultPort        = "8080"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvironment = "dev"
	DefaultServiceName = "spacecases"
	DefaultVersion     = "dev"

	DefaultDBUser = "postgres"
	DefaultDBHost = "localhost"
	DefaultDBPort = "5432"
	DefaultDBName = "spacecases"

	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute

	DefaultCatalogSource      = "configs/catalog"
	DefaultCatalogRefreshSpec = "@every 15m"

	DefaultKeyPrice           = 249
	DefaultStartingBalance    = 0
	DefaultInventoryCapacity  = 50
	DefaultClaimBaseReward    = 100
	DefaultClaimMaxMultiplier = 7
	DefaultTransferAttempts   = 5
	DefaultSettlementWindow   = 30 * time.Second

	DefaultSettlementWorkers = 4
	DefaultSettlementQueue   = 256

	DefaultEventMaxRetries     = 5
	DefaultEventRetryDelay     = 2 * time.Second
	DefaultEventDeadLetterPath = "logs/event_deadletter.jsonl"

	DefaultNamingCacheSize = 1024
	DefaultNamingCacheTTL  = 5 * time.Minute

	DefaultShutdownTimeout = 30 * time.Second
)

// Environment names
const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Example values shipped in .env.example that must never reach production
const (
	exampleDBPassword = "change_this_secure_password"
	exampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
