// Package export writes stored fighter data to flat files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
)

// csvHeader lists the exported columns in order. It mirrors the stored
// fighter schema minus the row ID.
var csvHeader = []string{
	"url",
	"name",
	"height_inches",
	"weight_label",
	"reach_inches",
	"stance",
	"dob",
	"strikes_landed_per_min",
	"striking_accuracy",
	"strikes_absorbed_per_min",
	"strike_defense",
	"takedown_avg",
	"takedown_accuracy",
	"takedown_defense",
	"submission_avg",
	"record",
	"days_since_last_fight",
	"fight_count",
	"ufc_fight_count",
	"weight_class",
	"is_low_sample",
}

// WriteCSV writes the fighters as CSV to w, header first. Absent optional
// fields become empty cells.
func WriteCSV(w io.Writer, fighters []database.StoredFighter) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, f := range fighters {
		row := []string{
			f.URL,
			f.Name,
			intCell(f.HeightInches),
			stringCell(f.WeightLabel),
			intCell(f.ReachInches),
			stringCell(f.Stance),
			stringCell(f.DOB),
			floatCell(f.StrikesLandedPerMin),
			floatCell(f.StrikingAccuracy),
			floatCell(f.StrikesAbsorbedPerMin),
			floatCell(f.StrikeDefense),
			floatCell(f.TakedownAvg),
			floatCell(f.TakedownAccuracy),
			floatCell(f.TakedownDefense),
			floatCell(f.SubmissionAvg),
			stringCell(f.Record.Record),
			intCell(f.DaysSinceLastFight),
			strconv.Itoa(f.FightCount),
			strconv.Itoa(f.UFCFightCount),
			f.WeightClass,
			strconv.FormatBool(f.LowSample),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for %s: %w", f.URL, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func stringCell(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func floatCell(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}
