package booking

import "testing"

func TestPrice_NoPromo(t *testing.T) {
	summary := Price(45.00, 2, 0)

	if got := FormatAmount(summary.Subtotal); got != "90.00" {
		t.Fatalf("expected subtotal 90.00, got %s", got)
	}
	if got := FormatAmount(summary.Taxes); got != "9.00" {
		t.Fatalf("expected taxes 9.00, got %s", got)
	}
	if got := FormatAmount(summary.Discount); got != "0.00" {
		t.Fatalf("expected discount 0.00, got %s", got)
	}
	if got := FormatAmount(summary.Total); got != "99.00" {
		t.Fatalf("expected total 99.00, got %s", got)
	}
}

func TestPrice_WithPromo(t *testing.T) {
	rate, ok := DefaultPromoRegistry().Validate("SAVE20")
	if !ok {
		t.Fatal("expected SAVE20 to be a valid code")
	}

	summary := Price(45.00, 2, rate)

	if got := FormatAmount(summary.Discount); got != "18.00" {
		t.Fatalf("expected discount 18.00, got %s", got)
	}
	if got := FormatAmount(summary.Total); got != "81.00" {
		t.Fatalf("expected total 81.00, got %s", got)
	}
}

func TestPrice_TotalIsSumOfParts(t *testing.T) {
	for guests := 1; guests <= 10; guests++ {
		for _, rate := range []float64{0, 0.10, 0.15, 0.20} {
			summary := Price(37.50, guests, rate)
			want := summary.Subtotal + summary.Taxes - summary.Discount
			if summary.Total != want {
				t.Fatalf("guests=%d rate=%.2f: total %v != %v", guests, rate, summary.Total, want)
			}
			if summary.Total < 0 {
				t.Fatalf("guests=%d rate=%.2f: negative total %v", guests, rate, summary.Total)
			}
		}
	}
}

func TestFormatAmount_DisplayRounding(t *testing.T) {
	if got := FormatAmount(9.000000000000002); got != "9.00" {
		t.Fatalf("expected 9.00, got %s", got)
	}
	if got := FormatAmount(45); got != "45.00" {
		t.Fatalf("expected 45.00, got %s", got)
	}
}
