// Package dateutils provides the date helpers used for statement dates.
//
// CAMT dates stay ISO formatted strings end to end; these helpers only
// derive comparable forms from them.
package dateutils

import "strconv"

// DateLayoutISO is the ISO 8601 date layout used across the application.
const DateLayoutISO = "2006-01-02"

// DateInt converts an ISO date string (YYYY-MM-DD) to a YYYYMMDD integer
// for cheap chronological comparison. Strings shorter than ten characters
// or with non-numeric components yield 0.
func DateInt(iso string) int {
	if len(iso) < 10 {
		return 0
	}
	year, err := strconv.Atoi(iso[0:4])
	if err != nil {
		return 0
	}
	month, err := strconv.Atoi(iso[5:7])
	if err != nil {
		return 0
	}
	day, err := strconv.Atoi(iso[8:10])
	if err != nil {
		return 0
	}
	return year*10000 + month*100 + day
}

// TruncateDateTime returns the date part of an ISO date-time string
// ("2024-01-05T09:30:00Z" becomes "2024-01-05"). Shorter strings are
// returned unchanged.
func TruncateDateTime(s string) string {
	if len(s) >= 10 {
		return s[:10]
	}
	return s
}
