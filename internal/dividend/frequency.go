package dividend

import (
	"sort"
	"time"

	"github.com/divscope/divscope/models"
)

// Gap thresholds in days, inclusive upper bounds, checked in order.
const (
	maxMonthlyGap    = 35
	maxBiMonthlyGap  = 70
	maxQuarterlyGap  = 100
	maxSemiAnnualGap = 190
	maxAnnualGap     = 370
)

// Quarterly payers that skip a quarter still land in this band.
const (
	quarterlyPatternMinGap = 70
	quarterlyPatternMaxGap = 120
)

// Classify infers the payout cadence from the day gaps between events.
// It is a pure function: the input is not modified.
func Classify(events []models.DividendEvent) models.PayFrequency {
	if len(events) == 0 {
		return models.FreqNoRecords
	}
	if len(events) == 1 {
		return models.FreqAnnual
	}

	sorted := make([]models.DividendEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	// Day gaps between consecutive events, newest first.
	var totalGap float64
	for i := 1; i < len(sorted); i++ {
		totalGap += sorted[i-1].Date.Sub(sorted[i].Date).Hours() / 24
	}
	avgGap := totalGap / float64(len(sorted)-1)

	// A payer hitting only 3-4 distinct calendar months with roughly
	// quarterly spacing is quarterly even when one quarter was skipped
	// (ENB pays May/Aug/Nov with no Feb record, for example).
	if len(sorted) >= 3 {
		months := make(map[time.Month]struct{})
		for _, ev := range sorted {
			months[ev.Date.Month()] = struct{}{}
		}
		if (len(months) == 3 || len(months) == 4) &&
			avgGap >= quarterlyPatternMinGap && avgGap <= quarterlyPatternMaxGap {
			return models.FreqQuarterly
		}
	}

	switch {
	case avgGap <= maxMonthlyGap:
		return models.FreqMonthly
	case avgGap <= maxBiMonthlyGap:
		return models.FreqBiMonthly
	case avgGap <= maxQuarterlyGap:
		return models.FreqQuarterly
	case avgGap <= maxSemiAnnualGap:
		return models.FreqSemiAnnual
	case avgGap <= maxAnnualGap:
		return models.FreqAnnual
	}
	return models.FreqIrregular
}
