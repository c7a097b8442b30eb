package models

import "time"

// dayCountThreshold separates raw day counts from epoch-second timestamps.
// Some provider payloads report dividend dates as days since the epoch
// rather than seconds; anything below this bound cannot be a plausible
// epoch-second value for market data.
const dayCountThreshold = 10_000_000

const secondsPerDay = 86_400

// DayFromTimestamp converts a raw provider timestamp to a calendar day in
// UTC. Values that look like small day-counts are multiplied into seconds
// before conversion.
func DayFromTimestamp(raw int64) time.Time {
	if raw < dayCountThreshold {
		raw *= secondsPerDay
	}
	return Midnight(time.Unix(raw, 0).UTC())
}

// Midnight strips the time-of-day component, keeping the UTC calendar day.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
