package models

import (
	"testing"
	"time"
)

func TestDayFromTimestamp(t *testing.T) {
	tests := []struct {
		name string
		raw  int64
		want string
	}{
		{
			name: "epoch seconds with time of day",
			raw:  1717070045, // 2024-05-30 11:54:05 UTC
			want: "2024-05-30",
		},
		{
			name: "small value is a day count",
			raw:  19000,
			want: "2022-01-08",
		},
		{
			name: "value just past the threshold is seconds",
			raw:  10_000_001, // 1970-04-26
			want: "1970-04-26",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DayFromTimestamp(tt.raw)
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("DayFromTimestamp(%d) = %s, want %s", tt.raw, got.Format("2006-01-02"), tt.want)
			}
			if h, m, s := got.Clock(); h+m+s != 0 {
				t.Errorf("DayFromTimestamp(%d) has a time-of-day component", tt.raw)
			}
		})
	}
}

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 2, 10, 14, 30, 12, 0, time.UTC)
	got := Midnight(in)
	want := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Midnight() = %v, want %v", got, want)
	}
}
