// Package categorize maps free-text bank descriptions to suggested category
// names. Suggestions pre-fill the import wizard and are always overridable.
package categorize

import (
	"strings"
	"unicode"
)

// FallbackCategory is proposed when no keyword matches and the cleaned
// merchant name would be degenerate.
const FallbackCategory = "New Category"

type rule struct {
	keyword  string
	category string
}

// keywordRules is scanned top to bottom and the first match wins, so more
// specific keywords must come before generic ones. Keywords are lowercase
// substrings of the description.
var keywordRules = []rule{
	{"grocery", "Groceries"},
	{"supermarket", "Groceries"},
	{"safeway", "Groceries"},
	{"kroger", "Groceries"},
	{"trader joe", "Groceries"},
	{"whole foods", "Groceries"},
	{"aldi", "Groceries"},
	{"costco", "Groceries"},
	{"walmart", "Groceries"},

	{"shell", "Gas"},
	{"chevron", "Gas"},
	{"exxon", "Gas"},
	{"mobil", "Gas"},
	{"bp ", "Gas"},
	{"gas station", "Gas"},
	{"fuel", "Gas"},

	{"restaurant", "Dining"},
	{"cafe", "Dining"},
	{"coffee", "Dining"},
	{"starbucks", "Dining"},
	{"mcdonald", "Dining"},
	{"chipotle", "Dining"},
	{"doordash", "Dining"},
	{"grubhub", "Dining"},
	{"uber eats", "Dining"},
	{"pizza", "Dining"},

	{"netflix", "Entertainment"},
	{"spotify", "Entertainment"},
	{"hulu", "Entertainment"},
	{"cinema", "Entertainment"},
	{"theater", "Entertainment"},

	{"uber", "Transportation"},
	{"lyft", "Transportation"},
	{"transit", "Transportation"},
	{"parking", "Transportation"},
	{"metro", "Transportation"},

	{"electric", "Utilities"},
	{"water", "Utilities"},
	{"internet", "Utilities"},
	{"comcast", "Utilities"},
	{"utility", "Utilities"},
	{"phone", "Utilities"},
	{"verizon", "Utilities"},
	{"t-mobile", "Utilities"},

	{"pharmacy", "Health"},
	{"cvs", "Health"},
	{"walgreens", "Health"},
	{"clinic", "Health"},
	{"dental", "Health"},

	{"rent", "Housing"},
	{"mortgage", "Housing"},

	{"amazon", "Shopping"},
	{"target", "Shopping"},
	{"ebay", "Shopping"},

	{"payroll", "Income"},
	{"direct deposit", "Income"},
	{"salary", "Income"},
}

// legalSuffixes are dropped from merchant names during cleanup.
var legalSuffixes = map[string]bool{
	"llc":     true,
	"inc":     true,
	"corp":    true,
	"ltd":     true,
	"co":      true,
	"company": true,
}

// Suggest returns a category name for a bank description. It is pure and
// total: keyword lookup first, then a cleaned-up merchant name, then the
// fallback sentinel when cleanup yields fewer than 3 or more than 30
// characters.
func Suggest(description string) string {
	lower := strings.ToLower(description)
	for _, r := range keywordRules {
		if strings.Contains(lower, r.keyword) {
			return r.category
		}
	}

	name := cleanMerchantName(description)
	if len(name) < 3 || len(name) > 30 {
		return FallbackCategory
	}
	return name
}

// cleanMerchantName strips digits, store numbers, punctuation and
// legal-entity suffixes, collapses whitespace and title-cases each word.
func cleanMerchantName(description string) string {
	var b strings.Builder
	for _, r := range description {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}

	words := strings.Fields(b.String())
	cleaned := make([]string, 0, len(words))
	for _, w := range words {
		if legalSuffixes[strings.ToLower(w)] {
			continue
		}
		cleaned = append(cleaned, titleWord(w))
	}
	return strings.Join(cleaned, " ")
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
