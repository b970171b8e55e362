package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// Config holds the application configuration
type Config struct {
	Port        int
	LogLevel    string
	LogFormat   string
	ServiceName string
	Version     string
	Environment string

	DBUser            string
	DBPassword        string
	DBHost            string
	DBPort            string
	DBName            string
	DBMaxConns        int
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	DBAutoMigrate     bool

	APIKey         string // API key for authentication
	TrustedProxies []string
	CORSOrigins    []string

	// CatalogSource is a directory or an http(s) base URL holding the feeds
	CatalogSource      string
	CatalogRefreshSpec string
	// CatalogWatch reloads a directory source as soon as its files change
	CatalogWatch bool

	// Money amounts are in cents
	KeyPrice           int64
	StartingBalance    int64
	InventoryCapacity  int
	ClaimBaseReward    int64
	ClaimMaxMultiplier int
	TransferAttempts   int
	SettlementWindow   time.Duration

	SettlementWorkers int
	SettlementQueue   int

	EventMaxRetries     int
	EventRetryDelay     time.Duration
	EventDeadLetterPath string

	NamingCacheSize int
	NamingCacheTTL  time.Duration

	ShutdownTimeout time.Duration
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// A .env file is optional; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		ServiceName: getEnv("SERVICE_NAME", DefaultServiceName),
		Version:     getEnv("VERSION", DefaultVersion),
		Environment: getEnv("ENVIRONMENT", DefaultEnvironment),

		DBUser:            getEnv("DB_USER", DefaultDBUser),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", DefaultDBHost),
		DBPort:            getEnv("DB_PORT", DefaultDBPort),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		DBAutoMigrate:     getEnvAsBool("DB_AUTO_MIGRATE", false),

		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		CORSOrigins:    getEnvAsList("CORS_ALLOWED_ORIGINS"),

		CatalogSource:      getEnv("CATALOG_SOURCE", DefaultCatalogSource),
		CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", DefaultCatalogRefreshSpec),
		CatalogWatch:       getEnvAsBool("CATALOG_WATCH", false),

		KeyPrice:           int64(getEnvAsInt("KEY_PRICE", DefaultKeyPrice)),
		StartingBalance:    int64(getEnvAsInt("STARTING_BALANCE", DefaultStartingBalance)),
		InventoryCapacity:  getEnvAsInt("INVENTORY_CAPACITY", DefaultInventoryCapacity),
		ClaimBaseReward:    int64(getEnvAsInt("CLAIM_BASE_REWARD", DefaultClaimBaseReward)),
		ClaimMaxMultiplier: getEnvAsInt("CLAIM_MAX_MULTIPLIER", DefaultClaimMaxMultiplier),
		TransferAttempts:   getEnvAsInt("TRANSFER_MAX_ATTEMPTS", DefaultTransferAttempts),
		SettlementWindow:   getEnvAsDuration("SETTLEMENT_WINDOW", DefaultSettlementWindow),

		SettlementWorkers: getEnvAsInt("SETTLEMENT_WORKERS", DefaultSettlementWorkers),
		SettlementQueue:   getEnvAsInt("SETTLEMENT_QUEUE_SIZE", DefaultSettlementQueue),

		EventMaxRetries:     getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries),
		EventRetryDelay:     getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay),
		EventDeadLetterPath: getEnv("EVENT_DEADLETTER_PATH", DefaultEventDeadLetterPath),

		NamingCacheSize: getEnvAsInt("NAMING_CACHE_SIZE", DefaultNamingCacheSize),
		NamingCacheTTL:  getEnvAsDuration("NAMING_CACHE_TTL", DefaultNamingCacheTTL),

		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	port, err := strconv.Atoi(getEnv("PORT", DefaultPort))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	return cfg, nil
}

// Validate checks value ranges that Load leaves alone. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT %q must be text or json", c.LogFormat))
	}
	if c.CatalogSource == "" {
		errs = append(errs, errors.New("CATALOG_SOURCE must be set"))
	}
	if _, err := cron.ParseStandard(c.CatalogRefreshSpec); err != nil {
		errs = append(errs, fmt.Errorf("CATALOG_REFRESH_SPEC %q: %w", c.CatalogRefreshSpec, err))
	}
	if c.KeyPrice < 0 {
		errs = append(errs, errors.New("KEY_PRICE cannot be negative"))
	}
	if c.StartingBalance < 0 {
		errs = append(errs, errors.New("STARTING_BALANCE cannot be negative"))
	}
	if c.InventoryCapacity <= 0 {
		errs = append(errs, errors.New("INVENTORY_CAPACITY must be positive"))
	}
	if c.ClaimBaseReward < 0 {
		errs = append(errs, errors.New("CLAIM_BASE_REWARD cannot be negative"))
	}
	if c.ClaimMaxMultiplier < 1 {
		errs = append(errs, errors.New("CLAIM_MAX_MULTIPLIER must be at least 1"))
	}
	if c.SettlementWindow <= 0 {
		errs = append(errs, errors.New("SETTLEMENT_WINDOW must be positive"))
	}
	if c.DBMaxConns <= 0 {
		errs = append(errs, errors.New("DB_MAX_CONNS must be positive"))
	}

	if c.IsProduction() {
		if c.DBPassword == exampleDBPassword {
			errs = append(errs, errors.New("DB_PASSWORD is the example value"))
		}
		if c.APIKey == exampleAPIKey {
			errs = append(errs, errors.New("API_KEY is the example value, generate one with: openssl rand -hex 32"))
		}
	}

	return errors.Join(errs...)
}

// IsProduction reports whether the service runs in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProd || c.Environment == "production"
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt returns defaultValue when the variable is unset or not an integer
func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// getEnvAsDuration returns defaultValue when the variable is unset or not a Go duration
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvAsBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

// getEnvAsList splits a comma separated variable, dropping blanks
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
