package dividend

import (
	"sort"
	"time"

	"github.com/divscope/divscope/models"
)

// trailingWindow restricts annualization to roughly one year of payouts.
const trailingWindow = 365 * 24 * time.Hour

// Annualize converts a trailing dividend stream and the current price into
// an annualized yield percentage. It returns 0 when there are no events or
// no usable price. The input is not modified.
func Annualize(events []models.DividendEvent, price float64, freq models.PayFrequency) float64 {
	if len(events) == 0 || price <= 0 {
		return 0
	}

	sorted := make([]models.DividendEvent, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	cutoff := time.Now().Add(-trailingWindow)
	var recent []models.DividendEvent
	for _, ev := range sorted {
		if !ev.Date.Before(cutoff) {
			recent = append(recent, ev)
		}
	}

	annual := annualDividend(sorted, recent, freq)
	return annual / price * 100
}

// annualDividend extrapolates the trailing stream to a full year of payouts.
func annualDividend(sorted, recent []models.DividendEvent, freq models.PayFrequency) float64 {
	// Annual payers: the single most recent payout is the full year.
	if freq == models.FreqAnnual {
		return sorted[0].Amount
	}

	recentSum := 0.0
	for _, ev := range recent {
		recentSum += ev.Amount
	}

	expected := freq.PaymentsPerYear()
	if expected == 0 {
		// Irregular or unknown cadence: no extrapolation, take the trailing
		// year as-is.
		return recentSum
	}

	if len(recent) >= expected {
		sum := 0.0
		for _, ev := range recent[:expected] {
			sum += ev.Amount
		}
		return sum
	}

	// Less than a year of history (a recently started payer, or a security
	// newly listed): top up with the average observed payment for each
	// missing slot.
	avg := recentSum / float64(max(1, len(recent)))
	return recentSum + avg*float64(expected-len(recent))
}
