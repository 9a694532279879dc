package booking

import "testing"

func TestValidateContact_OK(t *testing.T) {
	errs := ValidateContact("John Doe", "john@example.com")
	if !errs.OK() {
		t.Fatalf("expected no errors, got %+v", errs)
	}
}

func TestValidateContact_EmptyName(t *testing.T) {
	errs := ValidateContact("   ", "john@example.com")
	if errs.Name == "" {
		t.Fatal("expected name error for blank name")
	}
	if errs.Email != "" {
		t.Fatalf("expected no email error, got %q", errs.Email)
	}
}

func TestValidateContact_BadEmail(t *testing.T) {
	for _, email := range []string{"", "john", "john@", "@example.com", "john@example", "jo hn@example.com"} {
		errs := ValidateContact("John Doe", email)
		if errs.Email == "" {
			t.Fatalf("expected email error for %q", email)
		}
	}
}
