// Package batch consolidates directories of CAMT files into per-account
// exports. Files are parsed on a worker pool, their rows merged by account
// IBAN, sorted globally, and written as one CSV per account together with
// a YAML run report.
package batch

import (
	"fmt"
	"sort"
	"strings"

	"fjacquet/camt-export/internal/export"
	"fjacquet/camt-export/internal/logging"
)

// DateRange tracks the booking-date span of an account group. Dates stay
// ISO formatted strings, which compare chronologically as plain strings.
type DateRange struct {
	Start string
	End   string
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD",
// or "" when either end is missing.
func (dr DateRange) String() string {
	if dr.Start == "" || dr.End == "" {
		return ""
	}
	return fmt.Sprintf("%s_%s", dr.Start, dr.End)
}

// Observe widens the range to include one date. Empty dates are ignored.
func (dr DateRange) Observe(date string) DateRange {
	if date == "" {
		return dr
	}
	if dr.Start == "" || date < dr.Start {
		dr.Start = date
	}
	if dr.End == "" || date > dr.End {
		dr.End = date
	}
	return dr
}

// Merge combines this date range with another, returning the overall range.
func (dr DateRange) Merge(other DateRange) DateRange {
	return dr.Observe(other.Start).Observe(other.End)
}

// AccountGroup collects the rows of one account across all input files.
type AccountGroup struct {
	AccountIBAN string
	Rows        []export.Row
	Sources     []string
	Range       DateRange
}

// Aggregator merges exported rows from many files into per-account groups
// and fingerprints every row to flag overlapping statements.
type Aggregator struct {
	logger     logging.Logger
	groups     map[string]*AccountGroup
	seen       map[string]string
	duplicates int
}

// NewAggregator creates an empty Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{
		logger: logger,
		groups: make(map[string]*AccountGroup),
		seen:   make(map[string]string),
	}
}

// Add merges one file's rows (header-free) into the per-account groups and
// returns the account IBANs the file contributed to. Rows whose fingerprint
// was already seen in an earlier file are kept but counted and logged, the
// way overlapping statement periods surface in consolidated exports.
func (a *Aggregator) Add(sourceFile string, rows []export.Row) []string {
	touched := make(map[string]bool)
	for _, row := range rows {
		if len(row) < int(export.FieldCount) {
			continue
		}
		iban := row[export.FieldAccountIBAN].Canonical
		group, exists := a.groups[iban]
		if !exists {
			group = &AccountGroup{AccountIBAN: iban}
			a.groups[iban] = group
		}
		group.Rows = append(group.Rows, row)
		group.Range = group.Range.Observe(row[export.FieldBookingDate].Display)
		if !touched[iban] {
			group.Sources = append(group.Sources, sourceFile)
			touched[iban] = true
		}

		digest := export.RowDigest(row, nil)
		if first, dup := a.seen[digest]; dup {
			a.duplicates++
			a.logger.Warn("Duplicate row fingerprint",
				logging.Field{Key: "account", Value: iban},
				logging.Field{Key: "file", Value: sourceFile},
				logging.Field{Key: "first_seen", Value: first})
		} else {
			a.seen[digest] = sourceFile
		}
	}

	accounts := make([]string, 0, len(touched))
	for iban := range touched {
		accounts = append(accounts, iban)
	}
	sort.Strings(accounts)

	a.logger.Debug("Merged file rows into account groups",
		logging.Field{Key: "file", Value: sourceFile},
		logging.Field{Key: "rows", Value: len(rows)},
		logging.Field{Key: "accounts", Value: len(accounts)})

	return accounts
}

// Groups returns the account groups sorted by account IBAN for consistent
// output ordering.
func (a *Aggregator) Groups() []AccountGroup {
	groups := make([]AccountGroup, 0, len(a.groups))
	for _, group := range a.groups {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].AccountIBAN < groups[j].AccountIBAN
	})

	a.logger.Info("Grouped rows into account groups",
		logging.Field{Key: "account_groups", Value: len(groups)})

	return groups
}

// Duplicates returns the number of rows whose fingerprint matched a row
// added earlier.
func (a *Aggregator) Duplicates() int {
	return a.duplicates
}

// OutputFilename names the consolidated file for one account group,
// "{iban}_{start_date}_{end_date}.csv", falling back to the bare account
// identifier when the group has no dated rows.
func OutputFilename(group AccountGroup) string {
	id := sanitizeAccountID(group.AccountIBAN)
	if r := group.Range.String(); r != "" {
		return fmt.Sprintf("%s_%s.csv", id, r)
	}
	return fmt.Sprintf("%s.csv", id)
}

// sanitizeAccountID sanitizes an account identifier to be filesystem-safe.
// Spaces become underscores, anything outside [A-Za-z0-9._-] is replaced,
// path traversal sequences and runs of underscores collapse.
func sanitizeAccountID(accountID string) string {
	sanitized := strings.TrimSpace(accountID)
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}
	sanitized = result.String()

	for strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "_")
	}
	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}
	sanitized = strings.Trim(sanitized, "_.")

	if sanitized == "" {
		sanitized = "UNKNOWN"
	}
	return sanitized
}
