package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/divscope/divscope/config"
	"github.com/divscope/divscope/internal/analytics"
	"github.com/divscope/divscope/internal/api/yahoo"
	"github.com/divscope/divscope/internal/netassets"
	httpClient "github.com/divscope/divscope/internal/platform/http"
	"github.com/divscope/divscope/models"
)

func main() {
	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupSignalHandling(cancel)

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.LogLevel)
	log.Info().Int("symbols", len(cfg.Symbols)).Msg("Starting dividend analyzer")

	service := buildService(cfg)

	// Symbols run sequentially so progress stays ordered; each symbol's
	// sub-fetches still run concurrently inside the service.
	var records []*models.StockData
	for _, symbol := range cfg.Symbols {
		if ctx.Err() != nil {
			break
		}
		records = append(records, service.Analyze(ctx, symbol))
	}

	printSummary(records)
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

func printSummary(records []*models.StockData) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SYMBOL\tPRICE\tYIELD\tFREQUENCY\tINSIGHT")
	for _, r := range records {
		if r == nil {
			continue
		}
		if r.Error {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", r.Symbol, r.ErrorMessage)
			continue
		}
		fmt.Fprintf(w, "%s\t%.2f\t%.2f%%\t%s\t%s\n",
			r.Symbol, r.Price, r.YieldRate, r.PayFrequency, r.Insight)
	}
	w.Flush()
}

func setupSignalHandling(cancel context.CancelFunc) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info().Msg("Shutdown signal received, exiting...")
		cancel()
	}()
}

func setupLogging(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(parsed)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}
