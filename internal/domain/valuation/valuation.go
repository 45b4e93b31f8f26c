// Package valuation turns free-form transfer value text into a number.
//
// Accepted input is narrow: an optional currency symbol, digits
// with an optional decimal point, an optional M/K magnitude suffix, and at most
// one hyphen separating the two bounds of a range. Anything else is malformed.
//
// Malformed text parses as 0 through Parse. That is a known precision loss: a
// candidate with an unreadable price is treated as free. Callers that need to
// know use ParseStrict.
package valuation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// NotForSale is the magnitude assigned to players whose club refuses to sell.
const NotForSale = 200_000_000

const notForSaleMarker = "not for sale"

// Magnitude suffix multipliers.
const (
	million  = 1_000_000
	thousand = 1_000
)

var (
	// amount matches a bare magnitude after symbols and separators are removed.
	amount = regexp.MustCompile(`^(\d+(?:\.\d*)?|\.\d+)([mMkK]?)$`)

	stripper = strings.NewReplacer("€", "", "£", "", "$", "", ",", "", " ", "", "\t", "")
)

// Parse returns the numeric value of raw, or 0 when raw is empty or malformed.
func Parse(raw string) float64 {
	v, err := ParseStrict(raw)
	if err != nil {
		return 0
	}
	return v
}

// ParseStrict is Parse but reports malformed input as ErrMalformedPrice.
// Empty input is not malformed; it is "no price" and yields 0.
func ParseStrict(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, nil
	}
	if strings.Contains(strings.ToLower(s), notForSaleMarker) {
		return NotForSale, nil
	}

	s = stripper.Replace(s)
	low, high, isRange := strings.Cut(s, "-")
	if !isRange {
		v, err := parseAmount(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", err, raw)
		}
		return v, nil
	}

	lo, err := parseAmount(low)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (lower bound)", err, raw)
	}
	hi, err := parseAmount(high)
	if err != nil {
		return 0, fmt.Errorf("%w: %q (upper bound)", err, raw)
	}
	return (lo + hi) / 2, nil
}

func parseAmount(s string) (float64, error) {
	m := amount.FindStringSubmatch(s)
	if m == nil {
		return 0, ErrMalformedPrice
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, ErrMalformedPrice
	}
	switch strings.ToUpper(m[2]) {
	case "M":
		v *= million
	case "K":
		v *= thousand
	}
	return v, nil
}

// Parser adapts the package functions to the interface consumers depend on.
type Parser struct{}

// Parse implements the soft parse contract.
func (Parser) Parse(raw string) float64 { return Parse(raw) }

// ParseStrict implements the strict parse contract.
func (Parser) ParseStrict(raw string) (float64, error) { return ParseStrict(raw) }
