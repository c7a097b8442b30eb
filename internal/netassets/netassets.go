// Package netassets extracts a fund's total net assets figure from quote
// pages when the structured provider data does not carry one.
package netassets

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/divscope/divscope/internal/fallback"
	"github.com/divscope/divscope/models"
)

// secondaryTabs are the document views tried after the main quote page.
var secondaryTabs = []string{"profile", "holdings", "performance", "risk"}

// labelPatterns match a known net-assets label followed by a numeric value
// token, in raw HTML. Tried in order, first capture wins.
var labelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Net Assets\s*</span>.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Total Net Assets.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Fund Total Assets.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)AUM.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Assets Under Management.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Total Assets.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Fund AUM.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)ETF Assets.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Fund Size.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Asset Value.*?>([\d,.]+[KMBT]?)<`),
	regexp.MustCompile(`(?i)Net Asset Value.*?>([\d,.]+[KMBT]?)<`),
}

// labelText matches net-assets labels inside extracted cell text.
var labelText = regexp.MustCompile(`(?i)^(net assets|total net assets|fund total assets|aum|assets under management|total assets|fund aum|etf assets|fund size)$`)

// valueToken matches an abbreviated numeric value such as 2.5B or 750M.
var valueToken = regexp.MustCompile(`^[\d,.]+[KMBT]?$`)

// Resolver resolves a fund's net assets through a cascading document scan
// with a structured fund-profile endpoint as the last resort.
type Resolver struct {
	fetcher models.DocumentFetcher
	profile models.FundProfileProvider
	baseURL string
	logger  zerolog.Logger
}

// NewResolver creates a net-assets resolver. baseURL is the HTML quote page
// base, e.g. "https://finance.yahoo.com/quote".
func NewResolver(fetcher models.DocumentFetcher, profile models.FundProfileProvider, baseURL string) *Resolver {
	return &Resolver{
		fetcher: fetcher,
		profile: profile,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  log.With().Str("component", "net_assets").Logger(),
	}
}

// Resolve returns the net assets figure in dollars, or false when no source
// produced one. Failures at any step are swallowed and the chain advances.
func (r *Resolver) Resolve(ctx context.Context, symbol string) (float64, bool) {
	if symbol == "" {
		return 0, false
	}

	chain := fallback.New("net_assets",
		fallback.Strategy[float64]{
			Name: "quote_page",
			Run: func(ctx context.Context) (float64, error) {
				return r.scanPage(ctx, fmt.Sprintf("%s/%s", r.baseURL, symbol))
			},
		},
		fallback.Strategy[float64]{
			Name: "secondary_tabs",
			Run: func(ctx context.Context) (float64, error) {
				for _, tab := range secondaryTabs {
					value, err := r.scanPage(ctx, fmt.Sprintf("%s/%s/%s", r.baseURL, symbol, tab))
					if err == nil {
						return value, nil
					}
				}
				return 0, fallback.ErrNoResult
			},
		},
		fallback.Strategy[float64]{
			Name: "fund_profile",
			Run: func(ctx context.Context) (float64, error) {
				millions, err := r.profile.FundNetAssets(ctx, symbol)
				if err != nil {
					return 0, err
				}
				if millions <= 0 {
					return 0, fallback.ErrNoResult
				}
				// The structured endpoint reports millions.
				return millions * 1_000_000, nil
			},
		},
	)

	value, err := chain.Resolve(ctx)
	if err != nil {
		r.logger.Debug().Str("symbol", symbol).Msg("Net assets not found in any source")
		return 0, false
	}
	r.logger.Debug().Str("symbol", symbol).Float64("net_assets", value).Msg("Resolved net assets")
	return value, true
}

func (r *Resolver) scanPage(ctx context.Context, url string) (float64, error) {
	html, err := r.fetcher.Get(ctx, url)
	if err != nil {
		return 0, err
	}
	if value, ok := Extract(html); ok {
		return value, nil
	}
	return 0, fallback.ErrNoResult
}

// Extract scans an HTML document for a labelled net-assets value. It first
// tries the raw label/value patterns, then a structured pass over table
// cells and definition lists for pages that split label and value across
// sibling nodes.
func Extract(html string) (float64, bool) {
	if html == "" {
		return 0, false
	}

	for _, pattern := range labelPatterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			if value, ok := ParseAbbreviated(m[1]); ok {
				return value, true
			}
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}

	var found float64
	doc.Find("td, th, span, dt").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !labelText.MatchString(strings.TrimSpace(sel.Text())) {
			return true
		}
		next := strings.TrimSpace(sel.Next().Text())
		if !valueToken.MatchString(next) {
			return true
		}
		if value, ok := ParseAbbreviated(next); ok {
			found = value
			return false
		}
		return true
	})
	if found > 0 {
		return found, true
	}
	return 0, false
}

// ParseAbbreviated parses a numeric token with an optional K/M/B/T suffix
// and thousands separators. Non-positive and non-numeric values are
// rejected.
func ParseAbbreviated(raw string) (float64, bool) {
	value := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if value == "" {
		return 0, false
	}

	multiplier := 1.0
	switch value[len(value)-1] {
	case 'K', 'k':
		multiplier = 1e3
		value = value[:len(value)-1]
	case 'M', 'm':
		multiplier = 1e6
		value = value[:len(value)-1]
	case 'B', 'b':
		multiplier = 1e9
		value = value[:len(value)-1]
	case 'T', 't':
		multiplier = 1e12
		value = value[:len(value)-1]
	}

	number, err := strconv.ParseFloat(value, 64)
	if err != nil || number <= 0 {
		return 0, false
	}
	return number * multiplier, true
}
