// Package fighter holds the fighter domain model and the total conversion
// functions that turn raw scraped strings into typed values.
package fighter

import (
	"strconv"
	"strings"
	"time"
)

// Record is the persisted unit produced once per fighter per pipeline run.
// It is immutable after construction; the storage layer keys upserts on URL.
type Record struct {
	URL  string `json:"url"`
	Name string `json:"name"`

	HeightInches *int    `json:"height_inches,omitempty"`
	WeightLabel  *string `json:"weight_label,omitempty"`
	ReachInches  *int    `json:"reach_inches,omitempty"`
	Stance       *string `json:"stance,omitempty"`
	DOB          *string `json:"dob,omitempty"`

	StrikesLandedPerMin   *float64 `json:"strikes_landed_per_min,omitempty"`
	StrikingAccuracy      *float64 `json:"striking_accuracy,omitempty"`
	StrikesAbsorbedPerMin *float64 `json:"strikes_absorbed_per_min,omitempty"`
	StrikeDefense         *float64 `json:"strike_defense,omitempty"`
	TakedownAvg           *float64 `json:"takedown_avg,omitempty"`
	TakedownAccuracy      *float64 `json:"takedown_accuracy,omitempty"`
	TakedownDefense       *float64 `json:"takedown_defense,omitempty"`
	SubmissionAvg         *float64 `json:"submission_avg,omitempty"`

	Record             *string `json:"record,omitempty"`
	DaysSinceLastFight *int    `json:"days_since_last_fight,omitempty"`
	FightCount         int     `json:"fight_count"`
	UFCFightCount      int     `json:"ufc_fight_count"`
	WeightClass        string  `json:"weight_class"`
	LowSample          bool    `json:"is_low_sample"`
}

// NewRecord builds a Record from a cleaned field map. Every lookup is
// with-default: a missing or sentinel field surfaces as nil, never an error.
// The clock time is used for the volatile days-since-last-fight field.
func NewRecord(url string, fields map[string]string, now time.Time) Record {
	rec := Record{
		URL:  url,
		Name: stringOrDefault(fields["name"], "Unknown"),

		HeightInches: HeightToInches(fields["height"]),
		WeightLabel:  optString(fields["weight"]),
		ReachInches:  ReachToInches(fields["reach"]),
		Stance:       optString(fields["stance"]),
		DOB:          optString(fields["dob"]),

		StrikesLandedPerMin:   SafeFloat(fields["slpm"]),
		StrikingAccuracy:      PercentageToFloat(fields["stracc"]),
		StrikesAbsorbedPerMin: SafeFloat(fields["sapm"]),
		StrikeDefense:         PercentageToFloat(fields["strdef"]),
		TakedownAvg:           SafeFloat(fields["tdavg"]),
		TakedownAccuracy:      PercentageToFloat(fields["tdacc"]),
		TakedownDefense:       PercentageToFloat(fields["tddef"]),
		SubmissionAvg:         SafeFloat(fields["subavg"]),

		DaysSinceLastFight: DaysSince(fields["mostrecentfight"], now),
		WeightClass:        WeightClass(fields["weight"]),
	}

	record := stripNoContest(fields["record"])
	rec.Record = optString(record)
	rec.FightCount = countFights(record)
	rec.UFCFightCount, rec.LowSample = ufcSample(fields["fightswithinufc"])

	return rec
}

// stripNoContest removes a no-contest suffix like " (1 NC)" from a record
// string so the stored record is the plain W-L-D triple.
func stripNoContest(record string) string {
	record = strings.TrimSpace(record)
	if strings.Contains(record, "NC") {
		if i := strings.Index(record, " ("); i != -1 {
			record = strings.TrimSpace(record[:i])
		}
	}
	return record
}

// countFights derives the career fight total from a "W-L-D" record string.
// Absent or unparseable records count as zero fights.
func countFights(record string) int {
	if isAbsent(record) {
		return 0
	}
	parts := strings.Split(record, "-")
	if len(parts) != 3 {
		return 0
	}
	total := 0
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return 0
		}
		total += n
	}
	return total
}

// ufcSample parses the UFC-branded fight count and derives the low-sample
// flag: fewer than three UFC fights, or an unparseable count, is too thin a
// sample to be statistically meaningful.
func ufcSample(raw string) (count int, low bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = "0"
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, true
	}
	return n, n < 3
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if isAbsent(s) {
		return nil
	}
	return &s
}

func stringOrDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
