package booking

import "testing"

func TestValidate_CaseInsensitive(t *testing.T) {
	registry := DefaultPromoRegistry()

	lowerRate, lowerOK := registry.Validate("save10")
	upperRate, upperOK := registry.Validate("SAVE10")

	if !lowerOK || !upperOK {
		t.Fatalf("expected both spellings valid, got %v and %v", lowerOK, upperOK)
	}
	if lowerRate != upperRate {
		t.Fatalf("expected identical rates, got %v and %v", lowerRate, upperRate)
	}
	if lowerRate != 0.10 {
		t.Fatalf("expected rate 0.10, got %v", lowerRate)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	registry := DefaultPromoRegistry()

	firstRate, firstOK := registry.Validate("WELCOME")
	secondRate, secondOK := registry.Validate("WELCOME")

	if firstRate != secondRate || firstOK != secondOK {
		t.Fatalf("expected identical results, got (%v,%v) and (%v,%v)", firstRate, firstOK, secondRate, secondOK)
	}
}

func TestValidate_UnknownCode(t *testing.T) {
	rate, ok := DefaultPromoRegistry().Validate("NOPE50")
	if ok {
		t.Fatal("expected unknown code to be invalid")
	}
	if rate != 0 {
		t.Fatalf("expected rate 0 for unknown code, got %v", rate)
	}
}

func TestValidate_TrimsWhitespace(t *testing.T) {
	if _, ok := DefaultPromoRegistry().Validate("  save20 "); !ok {
		t.Fatal("expected padded code to validate")
	}
}

func TestDefaultPromoRegistry_RatesBelowOne(t *testing.T) {
	for code, rate := range DefaultPromoRegistry() {
		if rate <= 0 || rate >= 1 {
			t.Fatalf("code %s has out-of-range rate %v", code, rate)
		}
	}
}
