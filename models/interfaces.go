package models

import (
	"context"
	"time"
)

// QuoteProvider is the upstream market-data capability consumed by the
// analytics engine. Implementations own the wire format; the engine only
// sees the normalized types below.
type QuoteProvider interface {
	// SpotQuote returns the current quote for a symbol.
	SpotQuote(ctx context.Context, symbol string) (*Quote, error)

	// ExtendedMetadata returns best-effort extra quote fields. Absence of
	// individual fields is tolerated; callers treat zero values as missing.
	ExtendedMetadata(ctx context.Context, symbol string) (*ExtendedMetadata, error)

	// DailyBars returns daily closes for the window, oldest first. Bars may
	// carry dividend amounts on ex-dividend days.
	DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]Bar, error)

	// DividendEvents returns the provider's windowed dividend event stream.
	DividendEvents(ctx context.Context, symbol string, from, to time.Time) ([]DividendEvent, error)
}

// FundProfileProvider exposes the structured fund-profile endpoint. The
// returned figure is denominated in millions, as reported upstream.
type FundProfileProvider interface {
	FundNetAssets(ctx context.Context, symbol string) (float64, error)
}

// DocumentFetcher retrieves raw HTML documents.
type DocumentFetcher interface {
	Get(ctx context.Context, url string) (string, error)
}
