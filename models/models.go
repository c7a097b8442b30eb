package models

import (
	"time"
)

// DividendEvent is a single recorded payout for a security.
type DividendEvent struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// PayFrequency is the inferred cadence of dividend payouts.
type PayFrequency string

const (
	FreqNoRecords  PayFrequency = "No Records"
	FreqAnnual     PayFrequency = "Annual"
	FreqMonthly    PayFrequency = "Monthly"
	FreqBiMonthly  PayFrequency = "Bi-Monthly"
	FreqQuarterly  PayFrequency = "Quarterly"
	FreqSemiAnnual PayFrequency = "Semi-Annual"
	FreqIrregular  PayFrequency = "Irregular"
)

// PaymentsPerYear returns the expected number of payouts per year for
// fixed-cadence frequencies, and 0 for frequencies without a fixed schedule.
func (f PayFrequency) PaymentsPerYear() int {
	switch f {
	case FreqAnnual:
		return 1
	case FreqMonthly:
		return 12
	case FreqBiMonthly:
		return 6
	case FreqQuarterly:
		return 4
	case FreqSemiAnnual:
		return 2
	}
	return 0
}

// PricePoint is a single daily closing price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// Quote holds the spot quote fields used by the analytics engine.
type Quote struct {
	Symbol            string  `json:"symbol"`
	ShortName         string  `json:"short_name"`
	LongName          string  `json:"long_name"`
	Price             float64 `json:"price"`
	DayChangePct      float64 `json:"day_change_pct"`
	MarketCap         float64 `json:"market_cap"`
	IsFund            bool    `json:"is_fund"`
	FiftyDayAvgChange float64 `json:"fifty_day_avg_change"` // ratio vs 50-day average, not percent
}

// ExtendedMetadata holds best-effort quote metadata. Any field may be zero
// when the provider does not report it.
type ExtendedMetadata struct {
	Recommendation   string  `json:"recommendation"`
	ProviderYieldPct float64 `json:"provider_yield_pct"`
	TotalAssets      float64 `json:"total_assets"`
}

// Bar is a single daily bar. Dividend carries the payout that went ex on
// that day, or 0.
type Bar struct {
	Date     time.Time `json:"date"`
	Close    float64   `json:"close"`
	Dividend float64   `json:"dividend,omitempty"`
}

// StockData is the analytics record produced for one symbol. It is built
// fresh on every request and never mutated after construction. Optional
// numeric fields use 0 as "not reported"; there is no open-ended field bag.
type StockData struct {
	Symbol            string          `json:"symbol"`
	Name              string          `json:"name"`
	LongName          string          `json:"longName,omitempty"`
	Price             float64         `json:"regularMarketPrice"`
	DayChangePct      float64         `json:"dayChange"`
	MonthChangePct    float64         `json:"monthChange"`
	DividendHistory   []DividendEvent `json:"dividendHistory"`
	PayFrequency      PayFrequency    `json:"payFrequency"`
	YieldRate         float64         `json:"yieldRate"`     // resolved yield, provider preferred
	DividendYield     float64         `json:"dividendYield"` // yield computed from the trailing stream
	MarketCap         float64         `json:"marketCap,omitempty"`
	TotalNetAssets    float64         `json:"totalNetAssets,omitempty"`
	IsFund            bool            `json:"isEtf"`
	FiftyDayAvgChange float64         `json:"fiftyDayAverageChangePercent,omitempty"`
	Recommendation    string          `json:"recommendationKey"`
	Insight           string          `json:"opinion"`
	PriceHistory      []PricePoint    `json:"priceHistory,omitempty"`
	Source            string          `json:"source"`
	FetchedAt         time.Time       `json:"fetchDate"`
	Error             bool            `json:"error,omitempty"`
	ErrorMessage      string          `json:"errorMessage,omitempty"`
}
