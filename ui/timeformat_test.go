package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "just now", ago: 30 * time.Second, want: "just now"},
		{name: "minutes", ago: 5 * time.Minute, want: "5m ago"},
		{name: "hours", ago: 3 * time.Hour, want: "3h ago"},
		{name: "days", ago: 5 * 24 * time.Hour, want: "5d ago"},
		{name: "months", ago: 65 * 24 * time.Hour, want: "2mo ago"},
		{name: "years", ago: 400 * 24 * time.Hour, want: "1y ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatRelativeTime(now.Add(-tt.ago), now))
		})
	}
}

func TestFormatLastSeen(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	assert.Equal(t, "never", FormatLastSeen(0, now))
	assert.Equal(t, "2m ago", FormatLastSeen(now.Add(-2*time.Minute).Unix(), now))
}
