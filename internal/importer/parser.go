// Package importer turns raw bank-export CSV text into candidate
// transactions, flags likely duplicates, and drives the multi-step import
// wizard. Candidates are never persisted here; commit goes through the
// wizard's Committer.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	apperrors "hearth/internal/errors"
)

const (
	// MaxFileSize is the upload size cap, checked before any row parsing.
	MaxFileSize = 5 << 20 // 5 MB

	// MaxDescriptionLength is the row description cap. Over-length rows are
	// rejected with a reason, never truncated, so dedupe fingerprints stay
	// faithful to the source.
	MaxDescriptionLength = 100

	dateLayout = "2006-01-02"
)

// Candidate is a parsed, not-yet-persisted transaction. Amount is normalized
// so expenses are positive; refunds and deposits come out negative.
type Candidate struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	RawRow      []string        `json:"raw_row"`
}

// AmountCents returns the candidate amount in cents.
func (c Candidate) AmountCents() int64 {
	return c.Amount.Shift(2).Round(0).IntPart()
}

// RowError records why a data row was rejected. Row numbers are 1-based over
// data rows (the header is row 0 and cannot produce a RowError).
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParseResult is the outcome of parsing one file. Rows that fail validation
// land in Errors; parsing continues for the rest. Treat it as immutable.
type ParseResult struct {
	Transactions []Candidate `json:"transactions"`
	Errors       []RowError  `json:"errors"`
}

// ValidateFile checks the file-level preconditions. It fails fast with a
// distinct error before any row parsing begins.
func ValidateFile(name string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return apperrors.ErrImportBadFile
	}
	if size > MaxFileSize {
		return apperrors.ErrImportTooLarge
	}
	return nil
}

// Parse reads CSV text and produces a ParseResult. The header row must
// contain Date, Amount and Description columns, case-insensitive and in any
// order; extra columns are carried along in RawRow. A file with no rows at
// all, or a header and nothing else, yields an empty result; the caller
// must treat that as "nothing to import".
func Parse(r io.Reader) (*ParseResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return &ParseResult{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrImportBadHeader, err)
	}

	cols, err := findColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}
	for rowNum := 1; ; rowNum++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: "malformed CSV row"})
			continue
		}

		candidate, reason := parseRow(record, cols)
		if reason != "" {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Reason: reason})
			continue
		}
		result.Transactions = append(result.Transactions, candidate)
	}

	return result, nil
}

// columns holds the indexes of the required header columns.
type columns struct {
	date        int
	amount      int
	description int
}

// findColumns locates the required columns in the header, tolerating a UTF-8
// byte-order mark and surrounding whitespace.
func findColumns(header []string) (columns, error) {
	cols := columns{date: -1, amount: -1, description: -1}
	for i, name := range header {
		name = strings.TrimPrefix(name, "\ufeff")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "amount":
			cols.amount = i
		case "description":
			cols.description = i
		}
	}
	if cols.date == -1 || cols.amount == -1 || cols.description == -1 {
		return cols, apperrors.ErrImportBadHeader
	}
	return cols, nil
}

// parseRow validates one data row. It returns a non-empty reason instead of
// a candidate when the row must be rejected.
func parseRow(record []string, cols columns) (Candidate, string) {
	max := cols.date
	if cols.amount > max {
		max = cols.amount
	}
	if cols.description > max {
		max = cols.description
	}
	if len(record) <= max {
		return Candidate{}, "row has fewer fields than the header"
	}

	dateStr := strings.TrimSpace(record[cols.date])
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil || date.Format(dateLayout) != dateStr {
		return Candidate{}, fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", dateStr)
	}

	amountStr := strings.TrimSpace(record[cols.amount])
	raw, err := decimal.NewFromString(amountStr)
	if err != nil {
		return Candidate{}, fmt.Sprintf("invalid amount %q", amountStr)
	}

	// Bank exports list money out as negative and money in as positive.
	// Flip the sign so expenses are positive and refunds/deposits negative.
	amount := raw.Neg()
	if amount.IsZero() {
		return Candidate{}, "amount must not be zero"
	}

	description := strings.TrimSpace(record[cols.description])
	if description == "" {
		return Candidate{}, "description is required"
	}
	if len(description) > MaxDescriptionLength {
		return Candidate{}, fmt.Sprintf("description exceeds %d characters", MaxDescriptionLength)
	}

	return Candidate{
		Date:        date,
		Amount:      amount,
		Description: description,
		RawRow:      record,
	}, ""
}
