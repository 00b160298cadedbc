package upi

import (
	"regexp"
	"strings"
)

// upiPattern accepts local-part@suffix: 2+ alphanumeric/./-/_ characters,
// then 2+ letters.
var upiPattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)

// Suffix is one known UPI handle suffix and the bank it belongs to.
type Suffix struct {
	Suffix string `json:"suffix"`
	Bank   string `json:"bank"`
}

// knownSuffixes is the directory used for autocomplete and bank display.
var knownSuffixes = []Suffix{
	{Suffix: "@okaxis", Bank: "Axis Bank (OKaxis)"},
	{Suffix: "@okhdfc", Bank: "HDFC Bank (OKHDFC)"},
	{Suffix: "@ybl", Bank: "YES Bank (YBL)"},
	{Suffix: "@ibl", Bank: "IndusInd Bank (IBL)"},
	{Suffix: "@oksbi", Bank: "State Bank of India (SBI)"},
	{Suffix: "@upi", Bank: "Generic UPI"},
	{Suffix: "@paytm", Bank: "Paytm Payments Bank"},
	{Suffix: "@icici", Bank: "ICICI Bank"},
	{Suffix: "@axis", Bank: "Axis Bank"},
}

const maxSuggestions = 3

// IsValid reports whether id is a well-formed UPI identifier.
func IsValid(id string) bool {
	return upiPattern.MatchString(strings.TrimSpace(id))
}

// Suggest proposes up to 3 known suffixes for partial input. No suggestions
// are made until the user has typed a local part. Before an "@" is typed all
// suffixes qualify; after it, the portion typed after the "@" must appear in
// the suffix.
func Suggest(input string) []Suffix {
	trimmed := strings.TrimSpace(input)
	atIndex := strings.Index(trimmed, "@")

	local := trimmed
	query := ""
	if atIndex >= 0 {
		local = trimmed[:atIndex]
		query = strings.ToLower(trimmed[atIndex+1:])
	}

	if local == "" {
		return nil
	}

	var matches []Suffix
	for _, s := range knownSuffixes {
		suffix := strings.ToLower(strings.TrimPrefix(s.Suffix, "@"))
		if query == "" || strings.Contains(suffix, query) {
			matches = append(matches, s)
			if len(matches) == maxSuggestions {
				break
			}
		}
	}
	return matches
}

// ApplySuggestion replaces only the suffix portion of input, preserving the
// local part typed so far.
func ApplySuggestion(input, suffix string) string {
	trimmed := strings.TrimSpace(input)
	if atIndex := strings.Index(trimmed, "@"); atIndex >= 0 {
		trimmed = trimmed[:atIndex]
	}
	return trimmed + suffix
}

// BankFor returns the bank name for an id whose suffix exactly matches a
// known handle, or "" when unknown.
func BankFor(id string) string {
	atIndex := strings.Index(id, "@")
	if atIndex < 0 {
		return ""
	}
	suffix := strings.ToLower(id[atIndex:])
	for _, s := range knownSuffixes {
		if strings.ToLower(s.Suffix) == suffix {
			return s.Bank
		}
	}
	return ""
}
