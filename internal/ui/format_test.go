package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 B"},
		{name: "under a kilobyte", bytes: 512, want: "512 B"},
		{name: "kilobytes", bytes: 2048, want: "2.0 KB"},
		{name: "fractional kilobytes", bytes: 1536, want: "1.5 KB"},
		{name: "megabytes", bytes: 5 * 1024 * 1024, want: "5.0 MB"},
		{name: "gigabytes", bytes: 2 * 1024 * 1024 * 1024, want: "2.0 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.bytes))
		})
	}
}

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		name string
		secs float64
		want string
	}{
		{name: "zero", secs: 0, want: "0s"},
		{name: "negative", secs: -5, want: "0s"},
		{name: "seconds only", secs: 45, want: "45s"},
		{name: "minutes and seconds", secs: 90, want: "1m30s"},
		{name: "hours and minutes", secs: 3700, want: "1h01m"},
		{name: "rounds fractions", secs: 59.6, want: "1m00s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatSeconds(tt.secs))
		})
	}
}

func TestFormatAgo(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{name: "zero time", t: time.Time{}, want: "unknown"},
		{name: "just now", t: now.Add(-30 * time.Second), want: "just now"},
		{name: "minutes", t: now.Add(-5 * time.Minute), want: "5m ago"},
		{name: "hours", t: now.Add(-3 * time.Hour), want: "3h ago"},
		{name: "one day", t: now.Add(-25 * time.Hour), want: "1 day ago"},
		{name: "days", t: now.Add(-49 * time.Hour), want: "2 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAgo(tt.t))
		})
	}
}
