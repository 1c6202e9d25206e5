package http

import (
	"strings"
	"testing"
)

func containsFieldMsg(fe []FieldError, field, frag string) bool {
	for _, e := range fe {
		if e.Field == field && strings.Contains(e.Message, frag) {
			return true
		}
	}
	return false
}

func TestFolioValidation(t *testing.T) {
	type P struct {
		Folio string `validate:"folio"`
	}
	cv := NewValidator()

	// valid: registrar-style folio numbers
	for _, s := range []string{
		"1234567/89",
		"MF-991-A",
		"ABC123",
		strings.Repeat("A", 64),
	} {
		if err := cv.Validate(P{Folio: s}); err != nil {
			t.Fatalf("expected valid folio %q, got err: %v", s, err)
		}
	}

	// invalid samples
	for _, s := range []string{
		"",                      // empty
		"ab",                    // too short
		"mf-991",                // lowercase
		"-MF991",                // leading dash
		"/1234",                 // leading slash
		"MF 991",                // whitespace
		strings.Repeat("A", 65), // too long
	} {
		err := cv.Validate(P{Folio: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Folio", "valid folio number") {
			t.Fatalf("expected folio message for %q, got: %+v", s, fe)
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Amount float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{500000, 23536.74, 0.9, 1.2, 2.00} {
		if err := cv.Validate(P{Amount: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{1.234, 2.9999, 23536.745} {
		err := cv.Validate(P{Amount: v})
		if err == nil {
			t.Fatalf("expected dec2 error for %v", v)
		}
		fe := ToFieldErrors(err)
		if !containsFieldMsg(fe, "Amount", "at most 2 decimal places") {
			t.Fatalf("expected 'at most 2 decimal places' for %v, got %+v", v, fe)
		}
	}
}

func TestRequiredAndBoundsMapping(t *testing.T) {
	type P struct {
		Name   string  `validate:"required"`
		Tenure int     `validate:"gte=6"`
		Cap    int     `validate:"lte=60"`
		Amount float64 `validate:"gt=0,dec2"`
	}
	cv := NewValidator()

	err := cv.Validate(P{
		Name:   "",    // required
		Tenure: 3,     // gte=6
		Cap:    72,    // lte=60
		Amount: 0,     // gt=0
	})
	if err == nil {
		t.Fatalf("expected validation errors")
	}
	fe := ToFieldErrors(err)

	if !containsFieldMsg(fe, "Name", "is required") {
		t.Fatalf("missing 'is required' for Name: %+v", fe)
	}
	if !containsFieldMsg(fe, "Tenure", "greater than or equal to 6") {
		t.Fatalf("missing gte message for Tenure: %+v", fe)
	}
	if !containsFieldMsg(fe, "Cap", "less than or equal to 60") {
		t.Fatalf("missing lte message for Cap: %+v", fe)
	}
	if !containsFieldMsg(fe, "Amount", "greater than 0") {
		t.Fatalf("missing gt message for Amount: %+v", fe)
	}
}

func TestEmailMapping(t *testing.T) {
	type P struct {
		Email string `validate:"required,email"`
	}
	cv := NewValidator()

	if err := cv.Validate(P{Email: "r.mehta@example.com"}); err != nil {
		t.Fatalf("expected valid email, got %v", err)
	}
	err := cv.Validate(P{Email: "not-an-email"})
	if err == nil {
		t.Fatalf("expected email error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Email", "valid email address") {
		t.Fatalf("expected email message, got %+v", fe)
	}
}
