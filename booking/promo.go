package booking

import "strings"

// PromoRegistry maps uppercase promo codes to fractional discount rates.
// Rates must stay below 1 so a discounted total can never go negative.
type PromoRegistry map[string]float64

// DefaultPromoRegistry returns the codes the booking service honors.
func DefaultPromoRegistry() PromoRegistry {
	return PromoRegistry{
		"SAVE10":  0.10,
		"SAVE20":  0.20,
		"WELCOME": 0.15,
	}
}

// Validate looks up a code case-insensitively. Unknown codes return
// (0, false).
func (r PromoRegistry) Validate(code string) (float64, bool) {
	rate, ok := r[strings.ToUpper(strings.TrimSpace(code))]
	return rate, ok
}
