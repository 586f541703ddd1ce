package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// placeholderNames are strings that storefront templates use for
// buttons, badges, and empty slots. A "name" equal to one of these is
// never a real product.
var placeholderNames = map[string]struct{}{
	"product":     {},
	"products":    {},
	"sale":        {},
	"new":         {},
	"buy now":     {},
	"add to cart": {},
	"shop now":    {},
	"quick view":  {},
	"view all":    {},
	"sold out":    {},
}

const (
	minNameLen = 3
	maxNameLen = 200
)

// ValidateName reports whether a candidate string is acceptable as a
// product name: 3-200 characters, at least one alphanumeric, and not a
// template placeholder. Pure and deterministic.
func ValidateName(name string) bool {
	n := utf8.RuneCountInString(name)
	if n < minNameLen || n > maxNameLen {
		return false
	}

	hasAlnum := false
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			hasAlnum = true
			break
		}
	}
	if !hasAlnum {
		return false
	}

	_, placeholder := placeholderNames[strings.ToLower(name)]
	return !placeholder
}

var (
	currencyAmountRe = regexp.MustCompile(`[$€£]\s*([0-9][0-9.,]*)`)
	numericRe        = regexp.MustCompile(`[0-9][0-9.,]*`)
	tagRe            = regexp.MustCompile(`<[^>]*>`)
)

// ParsePrice converts a price string to a float. It strips currency
// symbols, drops thousands separators, and normalizes a comma decimal
// separator ("19,99") to a period. Unparseable input yields 0.
func ParsePrice(s string) float64 {
	m := numericRe.FindString(s)
	if m == "" {
		return 0
	}

	lastComma := strings.LastIndex(m, ",")
	lastPeriod := strings.LastIndex(m, ".")

	switch {
	case lastComma >= 0 && lastPeriod >= 0:
		// Whichever separator comes last is the decimal one:
		// "1,299.00" vs "1.299,00".
		if lastComma > lastPeriod {
			m = strings.ReplaceAll(m, ".", "")
			idx := strings.LastIndex(m, ",")
			m = strings.ReplaceAll(m[:idx], ",", "") + "." + m[idx+1:]
		} else {
			m = strings.ReplaceAll(m, ",", "")
		}
	case lastComma >= 0:
		// A final comma group of 1-2 digits is a decimal separator
		// ("19,99"); three digits means thousands ("1,299").
		idx := strings.LastIndex(m, ",")
		if len(m)-idx-1 <= 2 {
			m = strings.ReplaceAll(m[:idx], ",", "") + "." + m[idx+1:]
		} else {
			m = strings.ReplaceAll(m, ",", "")
		}
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	if v < 0 {
		return 0
	}
	return v
}

// currencyAmount scans free text for a currency-prefixed numeric token.
func currencyAmount(text string) (string, bool) {
	m := currencyAmountRe.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// StripTags removes HTML tags and collapses whitespace. Used for feed
// body_html descriptions.
func StripTags(s string) string {
	return strings.Join(strings.Fields(tagRe.ReplaceAllString(s, " ")), " ")
}

// Truncate limits a string to max runes.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
