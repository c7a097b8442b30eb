// Package dividend holds the dividend analytics core: history retrieval,
// payout frequency classification, and yield annualization.
package dividend

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/divscope/divscope/internal/fallback"
	"github.com/divscope/divscope/models"
)

// defaultHistoryYears is the trailing window used when no bounds are given.
const defaultHistoryYears = 2

// HistoryResolver retrieves the dividend event stream for a symbol, falling
// back from the provider's event query to dividend rows on daily bars.
type HistoryResolver struct {
	provider models.QuoteProvider
	logger   zerolog.Logger
}

// NewHistoryResolver creates a resolver backed by the given provider.
func NewHistoryResolver(provider models.QuoteProvider) *HistoryResolver {
	return &HistoryResolver{
		provider: provider,
		logger:   log.With().Str("component", "dividend_history").Logger(),
	}
}

// Resolve returns the dividend events for the window, newest first. Zero
// bounds default to the trailing two years. Resolve never fails: when both
// retrieval strategies come up empty the result is an empty slice.
func (r *HistoryResolver) Resolve(ctx context.Context, symbol string, from, to time.Time) []models.DividendEvent {
	if symbol == "" {
		return nil
	}
	if to.IsZero() {
		to = time.Now()
	}
	if from.IsZero() {
		from = to.AddDate(-defaultHistoryYears, 0, 0)
	}

	chain := fallback.New("dividend_history",
		fallback.Strategy[[]models.DividendEvent]{
			Name: "event_stream",
			Run: func(ctx context.Context) ([]models.DividendEvent, error) {
				events, err := r.provider.DividendEvents(ctx, symbol, from, to)
				if err != nil {
					return nil, err
				}
				if len(events) == 0 {
					return nil, fallback.ErrNoResult
				}
				return events, nil
			},
		},
		fallback.Strategy[[]models.DividendEvent]{
			Name: "daily_bars",
			Run: func(ctx context.Context) ([]models.DividendEvent, error) {
				bars, err := r.provider.DailyBars(ctx, symbol, from, to)
				if err != nil {
					return nil, err
				}
				var events []models.DividendEvent
				for _, bar := range bars {
					if bar.Dividend > 0 {
						events = append(events, models.DividendEvent{Date: bar.Date, Amount: bar.Dividend})
					}
				}
				if len(events) == 0 {
					return nil, fallback.ErrNoResult
				}
				return events, nil
			},
		},
	)

	events, err := chain.Resolve(ctx)
	if err != nil {
		r.logger.Warn().Str("symbol", symbol).Msg("No dividend data from any source")
		return []models.DividendEvent{}
	}
	return Normalize(events)
}

// Normalize drops malformed events, strips time-of-day from dates, and
// sorts the result newest first. The input slice is not modified.
func Normalize(events []models.DividendEvent) []models.DividendEvent {
	normalized := make([]models.DividendEvent, 0, len(events))
	for _, ev := range events {
		if ev.Amount <= 0 || ev.Date.IsZero() {
			continue
		}
		normalized = append(normalized, models.DividendEvent{
			Date:   models.Midnight(ev.Date),
			Amount: ev.Amount,
		})
	}
	sort.Slice(normalized, func(i, j int) bool {
		return normalized[i].Date.After(normalized[j].Date)
	})
	return normalized
}
