package fighter

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// fightDateLayout matches the site's fight-history date format, e.g. "Feb 01, 2025".
const fightDateLayout = "Jan 2, 2006"

// NoFightSentinel marks a fighter with no past fight in their history table.
const NoFightSentinel = "Does Not Exist"

var nonAlpha = regexp.MustCompile(`[^a-zA-Z]`)

// CleanFields lowercases every key, strips all non-alphabetic characters from
// it, and trims whitespace from every value. Keys that become empty after
// stripping are dropped. The input map is not modified.
func CleanFields(raw map[string]string) map[string]string {
	cleaned := make(map[string]string, len(raw))
	for key, value := range raw {
		cleanKey := strings.ToLower(nonAlpha.ReplaceAllString(key, ""))
		if cleanKey == "" {
			continue
		}
		cleaned[cleanKey] = strings.TrimSpace(value)
	}
	return cleaned
}

// isAbsent reports whether the trimmed value is one of the site's
// missing-data sentinels.
func isAbsent(s string) bool {
	switch s {
	case "", "--", "N/A":
		return true
	}
	return false
}

// SafeFloat parses a float, treating "", "--" and "N/A" as absent.
// Malformed input yields nil, never an error.
func SafeFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if isAbsent(s) {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// PercentageToFloat converts a percentage string like "48%" to 0.48.
func PercentageToFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if isAbsent(s) {
		return nil
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	if err != nil {
		return nil
	}
	v /= 100
	return &v
}

// ReachToInches converts a reach string like `80"` to integer inches.
func ReachToInches(s string) *int {
	s = strings.TrimSpace(s)
	if isAbsent(s) {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSuffix(s, `"`))
	if err != nil {
		return nil
	}
	return &v
}

// HeightToInches converts a height string like `6' 4"` to total inches.
// Any shape mismatch yields nil.
func HeightToInches(s string) *int {
	s = strings.TrimSpace(s)
	if isAbsent(s) {
		return nil
	}
	feetMark := strings.Index(s, "'")
	inchMark := strings.Index(s, `"`)
	if feetMark == -1 || inchMark == -1 || feetMark >= inchMark {
		return nil
	}
	feet, err := strconv.Atoi(strings.TrimSpace(s[:feetMark]))
	if err != nil {
		return nil
	}
	inches, err := strconv.Atoi(strings.TrimSpace(s[feetMark+1 : inchMark]))
	if err != nil {
		return nil
	}
	total := feet*12 + inches
	return &total
}

// DaysSince converts a "Jan 2, 2006" date string into the whole number of
// days between it and now. The no-fight sentinel and the usual absence
// markers yield nil, as does any unparseable date.
func DaysSince(s string, now time.Time) *int {
	s = strings.TrimSpace(s)
	if s == NoFightSentinel || isAbsent(s) {
		return nil
	}
	d, err := time.Parse(fightDateLayout, s)
	if err != nil {
		return nil
	}
	days := int(now.Sub(d).Hours() / 24)
	return &days
}
