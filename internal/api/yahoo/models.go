package yahoo

// Wire types for the Yahoo Finance v7/v8/v10 endpoints. Only the fields the
// engine consumes are mapped.

type quoteResponse struct {
	QuoteResponse struct {
		Result []quoteResult `json:"result"`
		Error  any           `json:"error"`
	} `json:"quoteResponse"`
}

type quoteResult struct {
	Symbol                       string  `json:"symbol"`
	ShortName                    string  `json:"shortName"`
	LongName                     string  `json:"longName"`
	RegularMarketPrice           float64 `json:"regularMarketPrice"`
	RegularMarketChangePercent   float64 `json:"regularMarketChangePercent"`
	MarketCap                    float64 `json:"marketCap"`
	QuoteType                    string  `json:"quoteType"`
	FiftyDayAverageChangePercent float64 `json:"fiftyDayAverageChangePercent"`
}

// rawValue is Yahoo's {raw, fmt} numeric wrapper.
type rawValue struct {
	Raw float64 `json:"raw"`
	Fmt string  `json:"fmt"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []summaryResult `json:"result"`
		Error  any             `json:"error"`
	} `json:"quoteSummary"`
}

type summaryResult struct {
	SummaryDetail *struct {
		DividendYield rawValue `json:"dividendYield"`
	} `json:"summaryDetail"`
	DefaultKeyStatistics *struct {
		TotalAssets rawValue `json:"totalAssets"`
	} `json:"defaultKeyStatistics"`
	RecommendationTrend *struct {
		Trend []recommendationTrend `json:"trend"`
	} `json:"recommendationTrend"`
	FundProfile *struct {
		FeesExpensesInvestment *struct {
			TotalNetAssets rawValue `json:"totalNetAssets"`
		} `json:"feesExpensesInvestment"`
	} `json:"fundProfile"`
}

type recommendationTrend struct {
	Period     string `json:"period"`
	StrongBuy  int    `json:"strongBuy"`
	Buy        int    `json:"buy"`
	Hold       int    `json:"hold"`
	Sell       int    `json:"sell"`
	StrongSell int    `json:"strongSell"`
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  any           `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
	Events *chartEvents `json:"events"`
}

type chartEvents struct {
	Dividends map[string]chartDividend `json:"dividends"`
}

type chartDividend struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}
