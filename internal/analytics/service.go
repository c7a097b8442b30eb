// Package analytics composes the quote provider, dividend analytics and
// insight generation into per-symbol records.
package analytics

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/divscope/divscope/internal/dividend"
	"github.com/divscope/divscope/internal/insight"
	"github.com/divscope/divscope/internal/netassets"
	"github.com/divscope/divscope/models"
)

// priceWindowDays is the short history window used for the month change.
const priceWindowDays = 14

const sourceName = "yahoo"

var nameSuffixes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\sETF$`),
	regexp.MustCompile(`(?i)\sFund$`),
	regexp.MustCompile(`(?i)\sTrust$`),
}

// Service resolves full analytics records per symbol. It is stateless per
// symbol and safe for concurrent use.
type Service struct {
	provider models.QuoteProvider
	history  *dividend.HistoryResolver
	assets   *netassets.Resolver
	logger   zerolog.Logger
}

// New creates an analytics service. assets may be nil when no document
// fetching capability is available; fund records then rely on structured
// data only.
func New(provider models.QuoteProvider, assets *netassets.Resolver) *Service {
	return &Service{
		provider: provider,
		history:  dividend.NewHistoryResolver(provider),
		assets:   assets,
		logger:   log.With().Str("component", "analytics").Logger(),
	}
}

// DividendHistory returns the raw dividend event stream for a symbol,
// newest first. Zero bounds default to the trailing two years.
func (s *Service) DividendHistory(ctx context.Context, symbol string, from, to time.Time) []models.DividendEvent {
	return s.history.Resolve(ctx, normalizeSymbol(symbol), from, to)
}

// Analyze produces the analytics record for one symbol. A provider failure
// yields an error-flagged record rather than an error; an empty symbol is a
// contract violation and yields nil.
func (s *Service) Analyze(ctx context.Context, symbol string) *models.StockData {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		s.logger.Warn().Msg("Empty symbol passed to Analyze")
		return nil
	}

	started := time.Now()

	// The four upstream reads are independent; issue them together and
	// join before computing.
	var (
		wg       sync.WaitGroup
		quote    *models.Quote
		quoteErr error
		meta     *models.ExtendedMetadata
		bars     []models.Bar
		history  []models.DividendEvent
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		quote, quoteErr = s.provider.SpotQuote(ctx, symbol)
	}()
	go func() {
		defer wg.Done()
		m, err := s.provider.ExtendedMetadata(ctx, symbol)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Extended metadata unavailable")
			return
		}
		meta = m
	}()
	go func() {
		defer wg.Done()
		to := time.Now()
		b, err := s.provider.DailyBars(ctx, symbol, to.AddDate(0, 0, -priceWindowDays), to)
		if err != nil {
			s.logger.Debug().Err(err).Str("symbol", symbol).Msg("Price history unavailable")
			return
		}
		bars = b
	}()
	go func() {
		defer wg.Done()
		history = s.history.Resolve(ctx, symbol, time.Time{}, time.Time{})
	}()
	wg.Wait()

	if quoteErr != nil || quote == nil {
		s.logger.Warn().Err(quoteErr).Str("symbol", symbol).Msg("Quote fetch failed")
		return errorRecord(symbol, quoteErr)
	}

	data := &models.StockData{
		Symbol:            symbol,
		Price:             quote.Price,
		DayChangePct:      quote.DayChangePct,
		MarketCap:         quote.MarketCap,
		FiftyDayAvgChange: quote.FiftyDayAvgChange,
		DividendHistory:   history,
		IsFund:            isFund(quote),
		Recommendation:    "Unknown",
		Source:            sourceName,
		FetchedAt:         time.Now(),
	}
	data.Name = cleanName(firstNonEmpty(quote.ShortName, quote.LongName, symbol))
	if quote.LongName != "" {
		data.LongName = cleanName(quote.LongName)
	}

	data.PriceHistory = pricePoints(bars)
	data.MonthChangePct = monthChange(data.PriceHistory)

	data.PayFrequency = dividend.Classify(history)
	data.DividendYield = dividend.Annualize(history, quote.Price, data.PayFrequency)

	var totalAssets float64
	if meta != nil {
		data.Recommendation = meta.Recommendation
		data.YieldRate = meta.ProviderYieldPct
		totalAssets = meta.TotalAssets
	}
	// The provider-reported yield wins unless it is absent.
	if data.YieldRate == 0 && data.DividendYield > 0 {
		data.YieldRate = data.DividendYield
	}

	if data.IsFund {
		switch {
		case totalAssets > 0:
			data.TotalNetAssets = totalAssets
		case s.assets != nil:
			if value, ok := s.assets.Resolve(ctx, symbol); ok {
				data.TotalNetAssets = value
			}
		}
	}

	data.Insight = insight.Generate(data)

	s.logger.Info().
		Str("symbol", symbol).
		Dur("elapsed", time.Since(started)).
		Str("frequency", string(data.PayFrequency)).
		Float64("yield", data.YieldRate).
		Msg("Analyzed symbol")

	return data
}

func errorRecord(symbol string, err error) *models.StockData {
	message := "Failed to fetch stock data"
	if err != nil {
		message = err.Error()
	}
	return &models.StockData{
		Symbol:          symbol,
		Name:            symbol,
		DividendHistory: []models.DividendEvent{},
		PayFrequency:    models.FreqNoRecords,
		Recommendation:  "Unknown",
		Source:          "error",
		FetchedAt:       time.Now(),
		Error:           true,
		ErrorMessage:    message,
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// isFund treats name-based hints as fund markers for securities the
// provider classifies as plain equities.
func isFund(q *models.Quote) bool {
	if q.IsFund {
		return true
	}
	for _, name := range []string{q.ShortName, q.LongName} {
		if strings.Contains(name, "ETF") || strings.Contains(name, "Fund") {
			return true
		}
	}
	return false
}

func cleanName(name string) string {
	for _, suffix := range nameSuffixes {
		name = suffix.ReplaceAllString(name, "")
	}
	return strings.TrimSpace(name)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func pricePoints(bars []models.Bar) []models.PricePoint {
	if len(bars) == 0 {
		return nil
	}
	points := make([]models.PricePoint, 0, len(bars))
	for _, bar := range bars {
		points = append(points, models.PricePoint{Date: bar.Date, Price: bar.Close})
	}
	return points
}

// monthChange is the percent move from the oldest to the newest sample of
// the short price window.
func monthChange(points []models.PricePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	oldest := points[0].Price
	latest := points[len(points)-1].Price
	if oldest == 0 {
		return 0
	}
	return (latest - oldest) / oldest * 100
}
