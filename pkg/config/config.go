package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// ⭐ SSOT: 모든 환경변수는 여기서만 읽음
type Config struct {
	Env string // development, staging, production

	// Logging
	LogLevel  string
	LogFormat string

	// Statistical defaults
	Stats StatsConfig
}

// StatsConfig holds the statistical defaults that are threaded through call
// sites instead of living as package-level globals.
type StatsConfig struct {
	TradingDays int     // trading periods per year, used for time aggregation (√252 etc.)
	AnnualDays  float64 // calendar days per year, used for annualized returns
	PCritical   float64 // Ljung-Box rejection threshold for the autocorrelation-adjusted Sharpe
	Window      int     // default rolling window length
}

// Load reads configuration from environment variables.
// ⭐ SSOT: 이 함수만 os.Getenv()를 호출함
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		Stats: StatsConfig{
			TradingDays: getEnvAsInt("TRADING_DAYS", 255),
			AnnualDays:  getEnvAsFloat("ANNUAL_DAYS", 365),
			PCritical:   getEnvAsFloat("P_CRITICAL", 0.05),
			Window:      getEnvAsInt("ROLLING_WINDOW", 60),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Stats.TradingDays <= 0 {
		return fmt.Errorf("TRADING_DAYS must be positive")
	}

	if c.Stats.AnnualDays <= 0 {
		return fmt.Errorf("ANNUAL_DAYS must be positive")
	}

	if c.Stats.PCritical <= 0 || c.Stats.PCritical >= 1 {
		return fmt.Errorf("P_CRITICAL must be in (0, 1)")
	}

	if c.Stats.Window < 2 {
		return fmt.Errorf("ROLLING_WINDOW must be >= 2")
	}

	return nil
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env", // Current directory
	}

	// Also try relative to executable
	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}
