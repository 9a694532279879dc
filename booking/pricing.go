package booking

import "fmt"

// TaxRate is applied to every booking subtotal.
const TaxRate = 0.10

// PriceSummary is the cost breakdown for a booking. Amounts are kept
// unrounded; rounding happens only when an amount is formatted for display.
type PriceSummary struct {
	Subtotal float64
	Taxes    float64
	Discount float64
	Total    float64
}

// Price computes the breakdown for guests at pricePerPerson with an
// optional fractional discount rate. Callers must pass guests >= 1, a
// non-negative price and a rate in [0,1); the wizard clamps guests to
// [MinGuests,MaxGuests] before this is reached.
func Price(pricePerPerson float64, guests int, discountRate float64) PriceSummary {
	subtotal := pricePerPerson * float64(guests)
	taxes := subtotal * TaxRate
	discount := subtotal * discountRate
	return PriceSummary{
		Subtotal: subtotal,
		Taxes:    taxes,
		Discount: discount,
		Total:    subtotal + taxes - discount,
	}
}

// FormatAmount renders an amount with two-decimal display rounding.
func FormatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
