package insight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/divscope/divscope/models"
)

func TestGenerateNilRecord(t *testing.T) {
	assert.Equal(t, "Insufficient data for analysis", Generate(nil))
}

func TestGenerateNoDividend(t *testing.T) {
	text := Generate(&models.StockData{})

	assert.Equal(t, "This security currently pays no dividend.", text)
}

func TestGenerateFragmentOrderIsFixed(t *testing.T) {
	data := &models.StockData{
		YieldRate:         6.5,
		FiftyDayAvgChange: 0.1,
		MarketCap:         500_000_000_000,
		Recommendation:    "Strong Buy: 12, Buy: 8, Hold: 3, Sell: 0, Strong Sell: 0",
	}

	text := Generate(data)

	want := "Above-average yield of 6.50% offers attractive income potential. " +
		"Good positive momentum with 10.00% gain compared to 50-day average. " +
		"This is a mega-cap stock with significant market presence. " +
		"Strong Buy: 12, Buy: 8, Hold: 3, Sell: 0, Strong Sell: 0"
	assert.Equal(t, want, text)
}

func TestGenerateIsDeterministic(t *testing.T) {
	data := &models.StockData{
		YieldRate:         9.1,
		FiftyDayAvgChange: -0.06,
		TotalNetAssets:    2_000_000_000,
	}

	first := Generate(data)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Generate(data))
	}
}

func TestYieldBands(t *testing.T) {
	tests := []struct {
		yield float64
		want  string
	}{
		{12, "High yield"},
		{8.01, "High yield"},
		{8, "Above-average yield"},
		{5.5, "Above-average yield"},
		{4, "Moderate yield"},
		{1.2, "Low yield"},
		{0, "pays no dividend"},
	}

	for _, tt := range tests {
		text := Generate(&models.StockData{YieldRate: tt.yield})
		assert.Contains(t, text, tt.want, "yield %.2f", tt.yield)
	}
}

func TestMomentumBands(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
		want  string
	}{
		{"strong gain", 0.12, "Good positive momentum"},
		{"slight gain", 0.05, "Slight positive momentum"},
		{"strong loss", -0.12, "Strong negative momentum"},
		{"concerning loss", -0.06, "Concerning negative momentum"},
		{"slight loss", -0.03, "Slight negative momentum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := Generate(&models.StockData{YieldRate: 4, FiftyDayAvgChange: tt.ratio})
			assert.Contains(t, text, tt.want)
		})
	}
}

func TestMomentumNeutralZoneOmitsFragment(t *testing.T) {
	for _, ratio := range []float64{0, 0.01, -0.01, 0.02, -0.02} {
		text := Generate(&models.StockData{YieldRate: 4, FiftyDayAvgChange: ratio})
		assert.NotContains(t, text, "momentum", "ratio %v", ratio)
	}
}

func TestSizeBucketsPreferMarketCap(t *testing.T) {
	// A fund carrying both figures is bucketed as a stock.
	data := &models.StockData{
		YieldRate:      4,
		MarketCap:      5_000_000_000,
		TotalNetAssets: 50_000_000,
	}

	text := Generate(data)
	assert.Contains(t, text, "mid-cap stock")
	assert.NotContains(t, text, "ETF")
}

func TestFundSizeBuckets(t *testing.T) {
	tests := []struct {
		assets float64
		want   string
	}{
		{20_000_000_000, "large ETF"},
		{5_000_000_000, "mid-size ETF"},
		{500_000_000, "smaller ETF"},
		{50_000_000, "very small ETF"},
	}

	for _, tt := range tests {
		text := Generate(&models.StockData{YieldRate: 4, TotalNetAssets: tt.assets})
		assert.Contains(t, text, tt.want, "assets %.0f", tt.assets)
	}
}

func TestUnknownRecommendationOmitted(t *testing.T) {
	for _, rec := range []string{"", "Unknown", "No recommendations available"} {
		text := Generate(&models.StockData{YieldRate: 4, Recommendation: rec})
		assert.False(t, strings.Contains(text, rec) && rec != "", "recommendation %q should be omitted", rec)
		assert.Equal(t, "Moderate yield of 4.00% provides reasonable income.", text)
	}
}
