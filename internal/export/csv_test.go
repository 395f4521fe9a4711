package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/database"
	"github.com/Dellali-Chakib/ufc-fight-scraper/internal/fighter"
)

func ptr[T any](v T) *T { return &v }

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	fighters := []database.StoredFighter{
		{
			ID: 1,
			Record: fighter.Record{
				URL:                 "http://ufcstats.com/fighter-details/aaa",
				Name:                "Israel Adesanya",
				HeightInches:        ptr(76),
				WeightLabel:         ptr("185 lbs."),
				ReachInches:         ptr(80),
				Stance:              ptr("Switch"),
				DOB:                 ptr("Jul 22, 1989"),
				StrikesLandedPerMin: ptr(3.93),
				StrikingAccuracy:    ptr(0.49),
				Record:              ptr("24-5-0"),
				DaysSinceLastFight:  ptr(120),
				FightCount:          29,
				UFCFightCount:       17,
				WeightClass:         "Middleweight",
			},
		},
		{
			ID: 2,
			Record: fighter.Record{
				URL:         "http://ufcstats.com/fighter-details/bbb",
				Name:        "Unknown",
				FightCount:  0,
				WeightClass: "None",
				LowSample:   true,
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, fighters))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	require.Equal(t, csvHeader, rows[0])
	require.Len(t, rows[0], 21)

	require.Equal(t, "http://ufcstats.com/fighter-details/aaa", rows[1][0])
	require.Equal(t, "Israel Adesanya", rows[1][1])
	require.Equal(t, "76", rows[1][2])
	require.Equal(t, "3.93", rows[1][7])
	require.Equal(t, "24-5-0", rows[1][15])
	require.Equal(t, "120", rows[1][16])
	require.Equal(t, "29", rows[1][17])
	require.Equal(t, "false", rows[1][20])

	// Absent optional fields come out as empty cells.
	require.Equal(t, "Unknown", rows[2][1])
	require.Equal(t, "", rows[2][2])
	require.Equal(t, "", rows[2][15])
	require.Equal(t, "0", rows[2][17])
	require.Equal(t, "None", rows[2][19])
	require.Equal(t, "true", rows[2][20])
}

func TestWriteCSV_EmptyStillWritesHeader(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, csvHeader, rows[0])
}
