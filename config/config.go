package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	AllowedOrigin string

	// Airtable collaborator
	AirtableBaseURL string
	AirtableBaseID  string
	AirtableToken   string
	AirtableTimeout time.Duration

	// Table sets probed per navigation flavor, in priority order.
	CatalogTables []string
	FrontTables   []string

	// Record location cache
	LocationCacheTTL     time.Duration
	LocationCacheFile    string // empty disables the snapshot
	CacheCleanupInterval time.Duration

	// Pricing rules
	VATRate          float64
	FlatRateProducer string // producer whose worktop prices are per item, not per meter
	SingleSidedLabel string // label that forces single-sided pricing

	// Rate limiting
	RateLimitRPS   float64
	RateLimitBurst int

	// Max records returned by code search
	SearchLimit int
}

// Default probe order observed in the production base.
var defaultCatalogTables = []string{
	"tbl2PygUg7hR2dvAS",
	"tblhgzE6iRfjy5m5y",
	"tbllC7rTLThhiTcce",
	"tblUjDKKgMPblWG5U",
	"tblC0XVfcCjdW3L0v",
	"tblsEnC8rEzMpe3rC",
}

func LoadConfig() *Config {
	// 1. Check if a specific config file is requested via env var
	configFile := os.Getenv("CONFIG_FILE")
	if configFile != "" {
		if err := godotenv.Load(configFile); err != nil {
			log.Printf("Warning: Failed to load config file '%s': %v", configFile, err)
		} else {
			log.Printf("Loaded configuration from %s", configFile)
		}
	} else {
		// 2. Default fallback: Try loading .env (standard local dev)
		// In docker/prod envs .env might not exist and system env vars carry everything.
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found or error loading it, relying on system env vars")
		}
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),

		AirtableBaseURL: getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com/v0"),
		AirtableBaseID:  getEnv("AIRTABLE_BASE_ID", ""),
		AirtableToken:   getEnv("AIRTABLE_TOKEN", ""),
		AirtableTimeout: getDurationEnv("AIRTABLE_TIMEOUT", 15*time.Second),

		CatalogTables: getListEnv("CATALOG_TABLES", defaultCatalogTables),

		// Location cache: 30-day freshness window, hourly expiry sweep
		LocationCacheTTL:     getDurationEnv("LOCATION_CACHE_TTL", 30*24*time.Hour),
		LocationCacheFile:    getEnv("LOCATION_CACHE_FILE", "table-locations.cache"),
		CacheCleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", time.Hour),

		VATRate:          getFloatEnv("VAT_RATE", 1.23),
		FlatRateProducer: getEnv("FLAT_RATE_PRODUCER", "Kronospan"),
		SingleSidedLabel: getEnv("SINGLE_SIDED_LABEL", "SL"),

		RateLimitRPS:   getFloatEnv("RATE_LIMIT_RPS", 50),
		RateLimitBurst: getIntEnv("RATE_LIMIT_BURST", 100),

		SearchLimit: getIntEnv("SEARCH_LIMIT", 20),
	}

	// Front products live in the same table set unless a dedicated set is configured.
	cfg.FrontTables = getListEnv("FRONT_TABLES", cfg.CatalogTables)

	cfg.Validate()
	return cfg
}

func (c *Config) Validate() {
	if c.AirtableToken == "" {
		log.Fatal("CRITICAL: AIRTABLE_TOKEN environment variable is required")
	}
	if c.AirtableBaseID == "" {
		log.Fatal("CRITICAL: AIRTABLE_BASE_ID environment variable is required")
	}
	if len(c.CatalogTables) == 0 {
		log.Fatal("CRITICAL: CATALOG_TABLES must name at least one table")
	}
	if c.VATRate <= 0 {
		log.Fatal("CRITICAL: VAT_RATE must be positive")
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("Invalid duration for %s, using fallback", key)
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
		log.Printf("Invalid int for %s, using fallback", key)
	}
	return fallback
}
