package main

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/divscope/divscope/config"
	"github.com/divscope/divscope/internal/analytics"
	"github.com/divscope/divscope/internal/api/yahoo"
	"github.com/divscope/divscope/internal/netassets"
	httpClient "github.com/divscope/divscope/internal/platform/http"
	"github.com/divscope/divscope/models"
)

var startedAt = time.Now()

// stockService is the slice of the analytics service the handlers use.
type stockService interface {
	Analyze(ctx context.Context, symbol string) *models.StockData
	DividendHistory(ctx context.Context, symbol string, from, to time.Time) []models.DividendEvent
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting dividend analytics server")

	service := buildService(cfg)
	router := newRouter(service)

	if err := router.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}

func newRouter(service stockService) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	api := router.Group("/api")
	api.GET("/health", healthHandler)
	api.GET("/stocks/:symbol", stockHandler(service))
	api.GET("/dividends/:symbol", dividendsHandler(service))
	return router
}

func buildService(cfg *config.Config) *analytics.Service {
	provider := yahoo.NewClient(yahoo.ClientOptions{
		BaseURL:        cfg.QuoteAPIBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})

	fetcher := httpClient.NewDocumentFetcher(httpClient.NewClient(httpClient.ClientOptions{
		Timeout:        time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
	}))
	assets := netassets.NewResolver(fetcher, provider, cfg.QuotePageBaseURL)

	return analytics.New(provider, assets)
}

func healthHandler(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"system": gin.H{
			"uptime_seconds": int(time.Since(startedAt).Seconds()),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"cpus":           runtime.NumCPU(),
			"heap_alloc":     mem.HeapAlloc,
			"heap_sys":       mem.HeapSys,
		},
	})
}

func stockHandler(service stockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := strings.TrimSpace(c.Param("symbol"))
		if symbol == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required parameter: symbol"})
			return
		}

		data := service.Analyze(c.Request.Context(), symbol)
		if data == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No data found for symbol: " + symbol})
			return
		}

		// A provider failure still returns 200 with the error flag set, so
		// batch callers can keep going.
		if !data.Error && data.Price == 0 {
			data.Error = true
			data.ErrorMessage = "No valid market data found for symbol: " + symbol
		}
		c.JSON(http.StatusOK, data)
	}
}

func dividendsHandler(service stockService) gin.HandlerFunc {
	return func(c *gin.Context) {
		symbol := strings.TrimSpace(c.Param("symbol"))
		if symbol == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Stock symbol parameter is required."})
			return
		}

		from := parseDate(c.Query("from"))
		to := parseDate(c.Query("to"))

		events := service.DividendHistory(c.Request.Context(), symbol, from, to)
		c.JSON(http.StatusOK, events)
	}
}

// parseDate accepts a calendar date or RFC3339 timestamp; anything else is
// treated as an unset bound.
func parseDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func requestLogger() gin.HandlerFunc {
	logger := log.With().Str("component", "http_server").Logger()
	return func(c *gin.Context) {
		started := time.Now()
		c.Next()
		logger.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(started)).
			Msg("Request")
	}
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
