package model

import (
	"testing"
)

func TestConversionRequest_Swap(t *testing.T) {
	request := ConversionRequest{
		Base:    USD,
		Targets: []Currency{EUR, GBP},
		Amount:  42,
	}

	request.Swap()

	if request.Base != EUR {
		t.Errorf("Expected base EUR after swap, got: %s", request.Base)
	}
	if request.Targets[0] != USD || request.Targets[1] != GBP {
		t.Errorf("Expected targets [USD GBP] after swap, got: %v", request.Targets)
	}
	if request.Amount != 42 {
		t.Errorf("Expected amount untouched by swap, got: %f", request.Amount)
	}
}

func TestConversionRequest_SwapNoTargets(t *testing.T) {
	request := ConversionRequest{
		Base:    USD,
		Targets: []Currency{},
		Amount:  1,
	}

	request.Swap()

	if request.Base != USD {
		t.Errorf("Expected base unchanged on empty-target swap, got: %s", request.Base)
	}
	if len(request.Targets) != 0 {
		t.Errorf("Expected targets to stay empty, got: %v", request.Targets)
	}
}

func TestCurrency_IsValid(t *testing.T) {
	testCases := []struct {
		code  Currency
		valid bool
	}{
		{code: USD, valid: true},
		{code: Currency("ngn"), valid: true},
		{code: Currency(""), valid: false},
		{code: Currency("US"), valid: false},
		{code: Currency("USDT"), valid: false},
		{code: Currency("U5D"), valid: false},
	}

	for _, tc := range testCases {
		if got := tc.code.IsValid(); got != tc.valid {
			t.Errorf("IsValid(%q): expected %v, got %v", tc.code, tc.valid, got)
		}
	}
}
