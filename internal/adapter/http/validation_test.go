package http

import (
	"strings"
	"testing"
)

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

type rateProbe struct {
	Rate float64 `validate:"required,rate"`
}

type hexProbe struct {
	ID string `validate:"required,hex32"`
}

type amountProbe struct {
	Amount float64 `validate:"required,gt=0,dec2"`
}

func TestRateTag(t *testing.T) {
	cv := NewValidator()

	for _, ok := range []float64{0.01, 0.5, 0.999} {
		if err := cv.Validate(&rateProbe{Rate: ok}); err != nil {
			t.Errorf("rate %v rejected: %v", ok, err)
		}
	}
	for _, bad := range []float64{0, 1, 1.5, -0.1} {
		if err := cv.Validate(&rateProbe{Rate: bad}); err == nil {
			t.Errorf("rate %v accepted", bad)
		}
	}
}

func TestHex32Tag(t *testing.T) {
	cv := NewValidator()

	if err := cv.Validate(&hexProbe{ID: "0123456789abcdef0123456789abcdef"}); err != nil {
		t.Errorf("valid id rejected: %v", err)
	}
	for _, bad := range []string{
		"0123456789ABCDEF0123456789ABCDEF", // uppercase
		"0123456789abcdef",                 // short
		"g123456789abcdef0123456789abcdef", // non-hex
	} {
		if err := cv.Validate(&hexProbe{ID: bad}); err == nil {
			t.Errorf("id %q accepted", bad)
		}
	}
}

func TestDec2Tag(t *testing.T) {
	cv := NewValidator()

	for _, ok := range []float64{100, 100.5, 100.25} {
		if err := cv.Validate(&amountProbe{Amount: ok}); err != nil {
			t.Errorf("amount %v rejected: %v", ok, err)
		}
	}
	if err := cv.Validate(&amountProbe{Amount: 100.255}); err == nil {
		t.Error("amount with 3 decimals accepted")
	}
}

func TestToFieldErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&amountProbe{})
	if err == nil {
		t.Fatal("empty probe passed validation")
	}
	out := ToFieldErrors(err)
	if !containsFieldMsg(out, "Amount", "required") {
		t.Fatalf("field errors = %+v", out)
	}
}
