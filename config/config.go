package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// DefaultSymbols is the built-in watchlist used when SYMBOLS is not set.
var DefaultSymbols = []string{
	"PIN", "AIPI", "BMAX", "JEPQ", "ENB", "IIPR", "NLY", "WES", "VZ", "ARCC",
	"ED", "MO", "EPD", "SDIV", "DIV", "MPLX", "KMI", "CONY", "MSTY", "BGT",
}

// Config holds all application configuration
type Config struct {
	HTTPAddr         string   // address for the API server
	LogLevel         string   // zerolog level name
	RequestTimeout   int      // per-request timeout, seconds
	RequestsPerSec   int      // outbound rate limit
	MaxRetries       int      // retry attempts for upstream calls
	Symbols          []string // default watchlist for the batch analyzer
	QuoteAPIBaseURL  string   // structured quote API base, overridable in tests
	QuotePageBaseURL string   // HTML quote page base, used by the net-assets scan
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	cfg := Config{
		HTTPAddr:         getEnvWithDefault("HTTP_ADDR", ":8080"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		RequestTimeout:   getEnvIntWithDefault("REQUEST_TIMEOUT", 30),
		RequestsPerSec:   getEnvIntWithDefault("REQUESTS_PER_SEC", 5),
		MaxRetries:       getEnvIntWithDefault("MAX_RETRIES", 3),
		Symbols:          getEnvListWithDefault("SYMBOLS", DefaultSymbols),
		QuoteAPIBaseURL:  getEnvWithDefault("QUOTE_API_BASE_URL", "https://query1.finance.yahoo.com"),
		QuotePageBaseURL: getEnvWithDefault("QUOTE_PAGE_BASE_URL", "https://finance.yahoo.com/quote"),
	}

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvListWithDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, strings.ToUpper(item))
		}
	}
	if len(list) == 0 {
		return defaultValue
	}
	return list
}
