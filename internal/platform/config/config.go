package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Background worker settings. WorkerCompanyID scopes the scheduled
	// depreciation and integrity tasks; with it empty the worker still
	// processes enqueued tasks but schedules nothing.
	RedisAddr        string
	EnableWorker     bool
	WorkerCompanyID  string
	DepreciationCron string
	IntegrityCron    string

	// Rate limiting, formatted per ulule/limiter (e.g. "60-M").
	APIRateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "hisabat-backend")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("ENABLE_WORKER", false)
	viper.SetDefault("WORKER_COMPANY_ID", "")
	// First day of each month at 02:00 UTC.
	viper.SetDefault("DEPRECIATION_CRON", "0 2 1 * *")
	// Nightly at 03:00 UTC.
	viper.SetDefault("INTEGRITY_CRON", "0 3 * * *")
	viper.SetDefault("API_RATE_LIMIT", "120-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	jwtSecret := viper.GetString("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour * 1
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}

	jwtIssuer := viper.GetString("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "hisabat-backend"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.JWTSecret = jwtSecret
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = jwtIssuer
	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	cfg.EnableWorker = viper.GetBool("ENABLE_WORKER")
	cfg.WorkerCompanyID = viper.GetString("WORKER_COMPANY_ID")
	cfg.DepreciationCron = viper.GetString("DEPRECIATION_CRON")
	cfg.IntegrityCron = viper.GetString("INTEGRITY_CRON")
	cfg.APIRateLimit = viper.GetString("API_RATE_LIMIT")

	return cfg, nil
}
