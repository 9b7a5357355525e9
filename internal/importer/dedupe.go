package importer

import (
	"fmt"
	"time"

	"hearth/internal/models"
)

// Fingerprint identifies a transaction by date, amount and description.
// Matching is exact; a fingerprint hit is advisory and never blocks commit.
type Fingerprint string

// NewFingerprint builds a fingerprint from a calendar date, an amount in
// cents and a description.
func NewFingerprint(date time.Time, amountCents int64, description string) Fingerprint {
	return Fingerprint(fmt.Sprintf("%s|%d|%s", date.Format(dateLayout), amountCents, description))
}

// MarkDuplicates flags each candidate that exactly matches an existing
// transaction. The result is one flag per candidate, aligned by index;
// flagged rows remain importable if the user confirms them.
func MarkDuplicates(candidates []Candidate, existing []models.Transaction) []bool {
	seen := make(map[Fingerprint]bool, len(existing))
	for _, tx := range existing {
		seen[NewFingerprint(tx.Date, tx.Amount, tx.Description)] = true
	}

	flags := make([]bool, len(candidates))
	for i, c := range candidates {
		flags[i] = seen[NewFingerprint(c.Date, c.AmountCents(), c.Description)]
	}
	return flags
}
