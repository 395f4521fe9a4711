package fighter

import (
	"strconv"
	"strings"
)

// division pairs a canonical UFC division with its weight ceiling in pounds.
type division struct {
	name    string
	ceiling int
}

// The nine canonical divisions, lightest first.
var divisions = []division{
	{"Strawweight", 115},
	{"Flyweight", 125},
	{"Bantamweight", 135},
	{"Featherweight", 145},
	{"Lightweight", 155},
	{"Welterweight", 170},
	{"Middleweight", 185},
	{"Light Heavyweight", 205},
	{"Heavyweight", 265},
}

// WeightClassNone is reported when the division cannot be determined.
const WeightClassNone = "None"

// WeightClass maps a raw weight label like "185 lbs." to a division name.
// A weight exactly at a ceiling or one pound under it belongs to that
// division (boundary fighters sit between classes), anything over 206 lb is
// Heavyweight, and everything else, including unparseable input, is "None".
func WeightClass(weightLabel string) string {
	w := strings.TrimSpace(weightLabel)
	if isAbsent(w) {
		return WeightClassNone
	}
	val, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(w, "lbs.", "")))
	if err != nil {
		return WeightClassNone
	}
	if val > 206 {
		return "Heavyweight"
	}
	for _, d := range divisions {
		if val == d.ceiling || val == d.ceiling-1 {
			return d.name
		}
	}
	return WeightClassNone
}
