package http

import (
	"errors"
	"strings"
	"testing"
)

func TestHex32Validation(t *testing.T) {
	type P struct {
		LoanID string `validate:"hex32"`
	}
	cv := NewValidator()

	ok := P{LoanID: strings.Repeat("a", 32)}
	if err := cv.Validate(ok); err != nil {
		t.Fatalf("expected valid hex32, got err: %v", err)
	}

	for _, s := range []string{
		"",                                  // empty
		strings.Repeat("A", 32),             // uppercase
		"deadbeef",                          // too short
		strings.Repeat("g", 32),             // non-hex char
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c8",   // 31 chars
		"3f9a6a1b3d544fbe8b3a6b3e8d6b2c88x", // 33 with extra
	} {
		err := cv.Validate(P{LoanID: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "LoanID", "32-char lowercase hex") {
			t.Fatalf("expected hex32 message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestDec2Validation(t *testing.T) {
	type P struct {
		Rate float64 `validate:"dec2"`
	}
	cv := NewValidator()

	for _, v := range []float64{0, 10, 12.5, 12.25, 99.99} {
		if err := cv.Validate(P{Rate: v}); err != nil {
			t.Fatalf("expected dec2 OK for %v, got %v", v, err)
		}
	}
	for _, v := range []float64{0.125, 10.001, 3.14159} {
		err := cv.Validate(P{Rate: v})
		if err == nil {
			t.Fatalf("expected error for %v", v)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Rate", "2 decimal places") {
			t.Fatalf("expected dec2 message for %v, got: %+v", v, ToFieldErrors(err))
		}
	}
}

func TestPaymethodValidation(t *testing.T) {
	type P struct {
		Method string `validate:"paymethod"`
	}
	cv := NewValidator()

	for _, s := range []string{"cash", "bank_transfer", "mobile_money"} {
		if err := cv.Validate(P{Method: s}); err != nil {
			t.Fatalf("expected paymethod OK for %q, got %v", s, err)
		}
	}
	for _, s := range []string{"", "cheque", "CASH", "bank transfer"} {
		err := cv.Validate(P{Method: s})
		if err == nil {
			t.Fatalf("expected error for %q", s)
		}
		if !containsFieldMsg(ToFieldErrors(err), "Method", "cash, bank_transfer or mobile_money") {
			t.Fatalf("expected paymethod message for %q, got: %+v", s, ToFieldErrors(err))
		}
	}
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	fe := ToFieldErrors(errors.New("boom"))
	if len(fe) != 1 || fe[0].Field != "_" || fe[0].Message != "boom" {
		t.Fatalf("unexpected: %+v", fe)
	}
}

func TestToFieldErrors_RequiredAndRanges(t *testing.T) {
	type P struct {
		Purpose  string  `validate:"required"`
		Duration int     `validate:"gt=0,lte=360"`
		Rate     float64 `validate:"gte=0,lte=100"`
	}
	cv := NewValidator()

	err := cv.Validate(P{Purpose: "", Duration: 0, Rate: 120})
	if err == nil {
		t.Fatal("expected error")
	}
	fe := ToFieldErrors(err)
	if !containsFieldMsg(fe, "Purpose", "required") {
		t.Fatalf("missing required message: %+v", fe)
	}
	if !containsFieldMsg(fe, "Duration", "greater than 0") {
		t.Fatalf("missing gt message: %+v", fe)
	}
	if !containsFieldMsg(fe, "Rate", "less than or equal to 100") {
		t.Fatalf("missing lte message: %+v", fe)
	}
}
