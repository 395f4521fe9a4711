package fighter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSafeFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"plain float", "4.02", floatPtr(4.02)},
		{"integer", "3", floatPtr(3)},
		{"padded", "  0.1  ", floatPtr(0.1)},
		{"empty", "", nil},
		{"whitespace", "   ", nil},
		{"dashes", "--", nil},
		{"not available", "N/A", nil},
		{"garbage", "abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := SafeFloat(tt.in)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestPercentageToFloat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *float64
	}{
		{"round trip", "48%", floatPtr(0.48)},
		{"no percent sign", "55", floatPtr(0.55)},
		{"zero", "0%", floatPtr(0)},
		{"empty", "", nil},
		{"dashes", "--", nil},
		{"not available", "N/A", nil},
		{"garbage", "x%", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := PercentageToFloat(tt.in)
			if tt.want == nil {
				require.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			require.InDelta(t, *tt.want, *got, 1e-9)
		})
	}
}

func TestReachToInches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *int
	}{
		{"round trip", `80"`, intPtr(80)},
		{"padded", `  74"  `, intPtr(74)},
		{"no quote", "72", intPtr(72)},
		{"empty", "", nil},
		{"dashes", "--", nil},
		{"fractional", `72.5"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ReachToInches(tt.in)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestHeightToInches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want *int
	}{
		{"round trip", `6' 4"`, intPtr(76)},
		{"short fighter", `5' 11"`, intPtr(71)},
		{"no space", `5'7"`, intPtr(67)},
		{"empty", "", nil},
		{"dashes", "--", nil},
		{"marks reversed", `6" 4'`, nil},
		{"missing inch mark", "6' 4", nil},
		{"non numeric feet", `x' 4"`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := HeightToInches(tt.in)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDaysSince(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, time.March, 3, 12, 0, 0, 0, time.UTC)

	got := DaysSince("Feb 01, 2025", now)
	require.NotNil(t, got)
	require.Equal(t, 30, *got)

	require.Nil(t, DaysSince(NoFightSentinel, now))
	require.Nil(t, DaysSince("--", now))
	require.Nil(t, DaysSince("N/A", now))
	require.Nil(t, DaysSince("", now))
	require.Nil(t, DaysSince("not a date", now))
}

func TestCleanFields(t *testing.T) {
	t.Parallel()

	raw := map[string]string{
		"SLpM":      " 4.02 ",
		"Str. Acc.": "48%",
		"TD Avg.":   "0.05",
		"DOB":       " Jul 22, 1989 ",
		"¡¡¡":       "dropped",
	}
	got := CleanFields(raw)
	require.Equal(t, map[string]string{
		"slpm":   "4.02",
		"stracc": "48%",
		"tdavg":  "0.05",
		"dob":    "Jul 22, 1989",
	}, got)
}

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
