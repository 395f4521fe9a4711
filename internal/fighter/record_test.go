package fighter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestNewRecordFullProfile(t *testing.T) {
	t.Parallel()

	fields := CleanFields(map[string]string{
		"name":            "Israel Adesanya",
		"Height":          `6' 4"`,
		"Weight":          "185 lbs.",
		"Reach":           `80"`,
		"STANCE":          "Switch",
		"DOB":             "Jul 22, 1989",
		"SLpM":            "4.02",
		"Str. Acc.":       "48%",
		"SApM":            "3.20",
		"Str. Def":        "55%",
		"TD Avg.":         "0.05",
		"TD Acc.":         "11%",
		"TD Def.":         "76%",
		"Sub. Avg.":       "0.1",
		"Record":          "24-5-0",
		"MostRecentFight": "Feb 01, 2025",
		"fightswithinufc": "17",
	})
	rec := NewRecord("http://ufcstats.com/fighter-details/1338e2c7480bdf9e", fields, testNow)

	require.Equal(t, "Israel Adesanya", rec.Name)
	require.Equal(t, 76, *rec.HeightInches)
	require.Equal(t, "185 lbs.", *rec.WeightLabel)
	require.Equal(t, "Middleweight", rec.WeightClass)
	require.Equal(t, 80, *rec.ReachInches)
	require.Equal(t, "Switch", *rec.Stance)
	require.InDelta(t, 4.02, *rec.StrikesLandedPerMin, 1e-9)
	require.InDelta(t, 0.48, *rec.StrikingAccuracy, 1e-9)
	require.InDelta(t, 0.55, *rec.StrikeDefense, 1e-9)
	require.InDelta(t, 0.11, *rec.TakedownAccuracy, 1e-9)
	require.InDelta(t, 0.76, *rec.TakedownDefense, 1e-9)
	require.Equal(t, "24-5-0", *rec.Record)
	require.Equal(t, 29, rec.FightCount)
	require.Equal(t, 17, rec.UFCFightCount)
	require.False(t, rec.LowSample)
	require.NotNil(t, rec.DaysSinceLastFight)
	require.Equal(t, 120, *rec.DaysSinceLastFight)
}

func TestNewRecordSparseFields(t *testing.T) {
	t.Parallel()

	rec := NewRecord("http://example.com/fighter-details/abc", map[string]string{}, testNow)

	require.Equal(t, "Unknown", rec.Name)
	require.Nil(t, rec.HeightInches)
	require.Nil(t, rec.WeightLabel)
	require.Nil(t, rec.ReachInches)
	require.Nil(t, rec.Record)
	require.Nil(t, rec.DaysSinceLastFight)
	require.Equal(t, 0, rec.FightCount)
	require.Equal(t, 0, rec.UFCFightCount)
	require.Equal(t, WeightClassNone, rec.WeightClass)
	require.True(t, rec.LowSample)
}

func TestFightCountDerivation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		record     string
		wantCount  int
		wantRecord *string
	}{
		{"plain record", "24-5-0", 29, strPtr("24-5-0")},
		{"no contest suffix stripped", "24-5-0 (1 NC)", 29, strPtr("24-5-0")},
		{"empty record", "", 0, nil},
		{"dashes", "--", 0, nil},
		{"malformed", "24-5", 0, strPtr("24-5")},
		{"non numeric", "a-b-c", 0, strPtr("a-b-c")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := NewRecord("u", map[string]string{"record": tt.record}, testNow)
			require.Equal(t, tt.wantCount, rec.FightCount)
			require.Equal(t, tt.wantRecord, rec.Record)
		})
	}
}

func TestLowSampleFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		count string
		want  bool
	}{
		{"two fights", "2", true},
		{"three fights", "3", false},
		{"many fights", "20", false},
		{"non numeric", "lots", true},
		{"missing", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := NewRecord("u", map[string]string{"fightswithinufc": tt.count}, testNow)
			require.Equal(t, tt.want, rec.LowSample)
		})
	}
}

func strPtr(s string) *string { return &s }
