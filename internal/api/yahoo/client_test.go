package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(ClientOptions{
		BaseURL:         server.URL,
		RequestTimeout:  5 * time.Second,
		RequestsPerSec:  100,
		MaxRetryTimeout: 50 * time.Millisecond,
	})
}

func TestSpotQuote(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v7/finance/quote"))
		assert.Equal(t, "JEPQ", r.URL.Query().Get("symbols"))
		w.Write([]byte(`{"quoteResponse":{"result":[{
			"symbol":"JEPQ","shortName":"JPMorgan Nasdaq Equity Premium Income ETF",
			"regularMarketPrice":55.4,"regularMarketChangePercent":0.31,
			"marketCap":15000000000,"quoteType":"ETF",
			"fiftyDayAverageChangePercent":0.042}],"error":null}}`))
	})

	quote, err := client.SpotQuote(context.Background(), "JEPQ")

	require.NoError(t, err)
	assert.Equal(t, "JEPQ", quote.Symbol)
	assert.True(t, quote.IsFund)
	assert.InDelta(t, 55.4, quote.Price, 1e-9)
	assert.InDelta(t, 0.042, quote.FiftyDayAvgChange, 1e-9)
}

func TestSpotQuoteUnknownSymbol(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteResponse":{"result":[],"error":null}}`))
	})

	_, err := client.SpotQuote(context.Background(), "NOPE")
	assert.Error(t, err)
}

func TestExtendedMetadata(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/MO"))
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"summaryDetail":{"dividendYield":{"raw":0.082,"fmt":"8.20%"}},
			"defaultKeyStatistics":{"totalAssets":{"raw":0}},
			"recommendationTrend":{"trend":[
				{"period":"0m","strongBuy":4,"buy":6,"hold":8,"sell":1,"strongSell":0}
			]}}],"error":null}}`))
	})

	meta, err := client.ExtendedMetadata(context.Background(), "MO")

	require.NoError(t, err)
	assert.InDelta(t, 8.2, meta.ProviderYieldPct, 1e-9)
	assert.Equal(t, "Strong Buy: 4, Buy: 6, Hold: 8, Sell: 1, Strong Sell: 0", meta.Recommendation)
}

func TestExtendedMetadataMissingModules(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"quoteSummary":{"result":[{}],"error":null}}`))
	})

	meta, err := client.ExtendedMetadata(context.Background(), "MO")

	require.NoError(t, err)
	assert.Equal(t, "Unknown", meta.Recommendation)
	assert.Zero(t, meta.ProviderYieldPct)
	assert.Zero(t, meta.TotalAssets)
}

func TestDividendEvents(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasPrefix(r.URL.Path, "/v8/finance/chart/ENB"))
		assert.Equal(t, "div", r.URL.Query().Get("events"))
		// One epoch-second date, one raw day-count date (19000 days).
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1717027200],
			"indicators":{"quote":[{"close":[36.2]}]},
			"events":{"dividends":{
				"1717027200":{"amount":0.915,"date":1717027200},
				"19000":{"amount":0.9,"date":19000}
			}}}],"error":null}}`))
	})

	events, err := client.DividendEvents(context.Background(), "ENB",
		time.Now().AddDate(-2, 0, 0), time.Now())

	require.NoError(t, err)
	require.Len(t, events, 2)
	for _, ev := range events {
		assert.Equal(t, time.UTC, ev.Date.Location())
		h, m, s := ev.Date.Clock()
		assert.Zero(t, h+m+s, "dates must be calendar days")
	}
	// The day-count value 19000 is 19000*86400 seconds into the epoch.
	want := time.Unix(19000*86400, 0).UTC().Truncate(24 * time.Hour)
	found := false
	for _, ev := range events {
		if ev.Date.Equal(want) {
			found = true
		}
	}
	assert.True(t, found, "day-count timestamp should be reconciled")
}

func TestDailyBarsAttachDividends(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{
			"timestamp":[1717027200,1717113600,1717200000],
			"indicators":{"quote":[{"close":[36.2,0,36.8]}]},
			"events":{"dividends":{"1717027200":{"amount":0.915,"date":1717027200}}}
			}],"error":null}}`))
	})

	bars, err := client.DailyBars(context.Background(), "ENB",
		time.Now().AddDate(0, 0, -14), time.Now())

	require.NoError(t, err)
	require.Len(t, bars, 2, "zero closes are skipped")
	assert.InDelta(t, 0.915, bars[0].Dividend, 1e-9)
	assert.Zero(t, bars[1].Dividend)
}

func TestFundNetAssets(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "fundProfile", r.URL.Query().Get("modules"))
		w.Write([]byte(`{"quoteSummary":{"result":[{
			"fundProfile":{"feesExpensesInvestment":{"totalNetAssets":{"raw":16234.5}}}
			}],"error":null}}`))
	})

	millions, err := client.FundNetAssets(context.Background(), "JEPQ")

	require.NoError(t, err)
	assert.InDelta(t, 16234.5, millions, 1e-6)
}

func TestChartServerError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusNotFound)
	})

	_, err := client.DividendEvents(context.Background(), "ENB",
		time.Now().AddDate(-2, 0, 0), time.Now())
	assert.Error(t, err)
}
