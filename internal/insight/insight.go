// Package insight derives a short templated commentary from the
// quantitative fields of an analytics record.
package insight

import (
	"fmt"
	"math"
	"strings"

	"github.com/divscope/divscope/models"
)

// Market cap buckets, dollars.
const (
	megaCap  = 200_000_000_000
	largeCap = 10_000_000_000
	midCap   = 2_000_000_000
	smallCap = 300_000_000
)

// Fund net asset buckets, dollars.
const (
	largeFund = 10_000_000_000
	midFund   = 1_000_000_000
	smallFund = 100_000_000
)

// Generate produces the insight text for a record. It is deterministic:
// fragments are evaluated in a fixed order (yield, momentum, size,
// recommendation), any fragment without data is skipped, and the rest are
// joined with single spaces.
func Generate(data *models.StockData) string {
	if data == nil {
		return "Insufficient data for analysis"
	}

	var opinions []string

	opinions = append(opinions, yieldOpinion(data.YieldRate))

	if momentum := momentumOpinion(data.FiftyDayAvgChange); momentum != "" {
		opinions = append(opinions, momentum)
	}

	if size := sizeOpinion(data.MarketCap, data.TotalNetAssets); size != "" {
		opinions = append(opinions, size)
	}

	if rec := data.Recommendation; rec != "" && rec != "Unknown" && rec != "No recommendations available" {
		opinions = append(opinions, rec)
	}

	return strings.Join(opinions, " ")
}

func yieldOpinion(yield float64) string {
	switch {
	case yield > 8:
		return fmt.Sprintf("High yield of %.2f%% may indicate elevated risk or potential dividend cut.", yield)
	case yield > 5:
		return fmt.Sprintf("Above-average yield of %.2f%% offers attractive income potential.", yield)
	case yield > 3:
		return fmt.Sprintf("Moderate yield of %.2f%% provides reasonable income.", yield)
	case yield > 0:
		return fmt.Sprintf("Low yield of %.2f%% suggests focus on growth rather than income.", yield)
	}
	return "This security currently pays no dividend."
}

// momentumOpinion comments on the change ratio against the 50-day average.
// The neutral band and a missing ratio both yield no fragment.
func momentumOpinion(ratio float64) string {
	if ratio == 0 {
		return ""
	}
	pct := ratio * 100
	abs := math.Abs(pct)

	switch {
	case pct > 8:
		return fmt.Sprintf("Good positive momentum with %.2f%% gain compared to 50-day average.", abs)
	case pct > 2:
		return fmt.Sprintf("Slight positive momentum with %.2f%% gain compared to 50-day average.", abs)
	case pct < -8:
		return fmt.Sprintf("Strong negative momentum with %.2f%% loss compared to 50-day average.", abs)
	case pct < -5:
		return fmt.Sprintf("Concerning negative momentum with %.2f%% loss compared to 50-day average.", abs)
	case pct < -2:
		return fmt.Sprintf("Slight negative momentum with %.2f%% loss compared to 50-day average.", abs)
	}
	return ""
}

// sizeOpinion buckets by market cap first; funds without a market cap fall
// back to net assets. The two bucket sets are mutually exclusive.
func sizeOpinion(marketCap, netAssets float64) string {
	if marketCap > 0 {
		switch {
		case marketCap > megaCap:
			return "This is a mega-cap stock with significant market presence."
		case marketCap > largeCap:
			return "This is a large-cap stock with established market position."
		case marketCap > midCap:
			return "This is a mid-cap stock with growth potential."
		case marketCap > smallCap:
			return "This is a small-cap stock that may offer growth opportunities but with higher volatility."
		}
		return "This is a micro-cap stock with higher risk and potentially higher reward."
	}

	if netAssets > 0 {
		switch {
		case netAssets > largeFund:
			return "This is a large ETF with substantial assets under management."
		case netAssets > midFund:
			return "This is a mid-size ETF with reasonable liquidity."
		case netAssets > smallFund:
			return "This is a smaller ETF that may have less liquidity."
		}
		return "This is a very small ETF which may have liquidity concerns."
	}

	return ""
}
