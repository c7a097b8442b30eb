// Package yahoo implements the quote provider capability against the Yahoo
// Finance JSON endpoints.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpClient "github.com/divscope/divscope/internal/platform/http"
	"github.com/divscope/divscope/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the Yahoo Finance API client. It implements
// models.QuoteProvider and models.FundProfileProvider.
type Client struct {
	baseURL    string
	httpClient *httpClient.Client
	logger     zerolog.Logger
}

// ClientOptions holds options for creating a new Yahoo client
type ClientOptions struct {
	BaseURL         string
	RequestTimeout  time.Duration
	RequestsPerSec  int
	MaxRetries      int
	MaxRetryTimeout time.Duration
}

// NewClient creates a new Yahoo Finance API client
func NewClient(options ClientOptions) *Client {
	httpOpts := httpClient.ClientOptions{
		Timeout:         options.RequestTimeout,
		RequestsPerSec:  options.RequestsPerSec,
		MaxRetries:      options.MaxRetries,
		MaxRetryTimeout: options.MaxRetryTimeout,
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient.NewClient(httpOpts),
		logger:     log.With().Str("component", "yahoo_client").Logger(),
	}
}

// SpotQuote fetches the current quote for a symbol.
func (c *Client) SpotQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	reqURL := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(symbol))

	var data quoteResponse
	if err := c.getJSON(ctx, reqURL, &data); err != nil {
		return nil, err
	}
	if len(data.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("no quote data for %s", symbol)
	}

	q := data.QuoteResponse.Result[0]
	return &models.Quote{
		Symbol:            q.Symbol,
		ShortName:         q.ShortName,
		LongName:          q.LongName,
		Price:             q.RegularMarketPrice,
		DayChangePct:      q.RegularMarketChangePercent,
		MarketCap:         q.MarketCap,
		IsFund:            q.QuoteType == "ETF",
		FiftyDayAvgChange: q.FiftyDayAverageChangePercent,
	}, nil
}

// ExtendedMetadata fetches recommendation trend, provider-reported yield and
// total assets. Missing modules leave the corresponding fields zero.
func (c *Client) ExtendedMetadata(ctx context.Context, symbol string) (*models.ExtendedMetadata, error) {
	result, err := c.quoteSummary(ctx, symbol, "recommendationTrend,summaryDetail,defaultKeyStatistics")
	if err != nil {
		return nil, err
	}

	meta := &models.ExtendedMetadata{Recommendation: "Unknown"}
	if result.RecommendationTrend != nil && len(result.RecommendationTrend.Trend) > 0 {
		t := result.RecommendationTrend.Trend[0]
		meta.Recommendation = fmt.Sprintf(
			"Strong Buy: %d, Buy: %d, Hold: %d, Sell: %d, Strong Sell: %d",
			t.StrongBuy, t.Buy, t.Hold, t.Sell, t.StrongSell,
		)
	}
	if result.SummaryDetail != nil {
		// The API reports the yield as a ratio.
		meta.ProviderYieldPct = result.SummaryDetail.DividendYield.Raw * 100
	}
	if result.DefaultKeyStatistics != nil {
		meta.TotalAssets = result.DefaultKeyStatistics.TotalAssets.Raw
	}
	return meta, nil
}

// DailyBars fetches daily closes for the window, oldest first. Dividend
// events in the chart payload are attached to the bar of their ex-date.
func (c *Client) DailyBars(ctx context.Context, symbol string, from, to time.Time) ([]models.Bar, error) {
	result, err := c.chart(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}

	dividendByDay := make(map[time.Time]float64)
	if result.Events != nil {
		for _, div := range result.Events.Dividends {
			dividendByDay[models.DayFromTimestamp(div.Date)] += div.Amount
		}
	}

	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote indicators for %s", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	var bars []models.Bar
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		day := models.DayFromTimestamp(ts)
		bars = append(bars, models.Bar{
			Date:     day,
			Close:    closes[i],
			Dividend: dividendByDay[day],
		})
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("empty data returned")
	}
	return bars, nil
}

// DividendEvents fetches the windowed dividend event stream.
func (c *Client) DividendEvents(ctx context.Context, symbol string, from, to time.Time) ([]models.DividendEvent, error) {
	result, err := c.chart(ctx, symbol, from, to)
	if err != nil {
		return nil, err
	}
	if result.Events == nil || len(result.Events.Dividends) == 0 {
		return nil, nil
	}

	var events []models.DividendEvent
	for _, div := range result.Events.Dividends {
		if div.Amount <= 0 {
			continue
		}
		events = append(events, models.DividendEvent{
			Date:   models.DayFromTimestamp(div.Date),
			Amount: div.Amount,
		})
	}
	return events, nil
}

// FundNetAssets queries the fund-profile module. The figure is reported in
// millions, as upstream delivers it.
func (c *Client) FundNetAssets(ctx context.Context, symbol string) (float64, error) {
	result, err := c.quoteSummary(ctx, symbol, "fundProfile")
	if err != nil {
		return 0, err
	}
	if result.FundProfile == nil || result.FundProfile.FeesExpensesInvestment == nil {
		return 0, fmt.Errorf("no fund profile for %s", symbol)
	}
	return result.FundProfile.FeesExpensesInvestment.TotalNetAssets.Raw, nil
}

func (c *Client) quoteSummary(ctx context.Context, symbol, modules string) (*summaryResult, error) {
	reqURL := fmt.Sprintf(
		"%s/v10/finance/quoteSummary/%s?modules=%s",
		c.baseURL,
		url.PathEscape(symbol),
		url.QueryEscape(modules),
	)

	var data quoteSummaryResponse
	if err := c.getJSON(ctx, reqURL, &data); err != nil {
		return nil, err
	}
	if len(data.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no summary data for %s", symbol)
	}
	return &data.QuoteSummary.Result[0], nil
}

func (c *Client) chart(ctx context.Context, symbol string, from, to time.Time) (*chartResult, error) {
	reqURL := fmt.Sprintf(
		"%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div",
		c.baseURL,
		url.PathEscape(symbol),
		from.Unix(),
		to.Unix(),
	)

	var data chartResponse
	if err := c.getJSON(ctx, reqURL, &data); err != nil {
		return nil, err
	}
	if len(data.Chart.Result) == 0 {
		return nil, fmt.Errorf("no chart data for %s", symbol)
	}
	return &data.Chart.Result[0], nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, target any) error {
	c.logger.Debug().Str("url", reqURL).Msg("Fetching")

	body, err := c.httpClient.Get(ctx, reqURL)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}

	if err := json.Unmarshal(body, target); err != nil {
		c.logger.Error().Err(err).Str("url", reqURL).Msg("Error parsing JSON")
		return fmt.Errorf("parsing JSON: %w", err)
	}
	return nil
}
