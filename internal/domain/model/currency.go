package model

type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	NGN Currency = "NGN"
	JPY Currency = "JPY"
	CAD Currency = "CAD"
	AUD Currency = "AUD"
)

// MenuCurrencies is the fixed set offered to the user. It is a menu, not
// an authoritative list: any 3-letter code is accepted and the upstream
// source decides whether it knows the currency.
var MenuCurrencies = []Currency{USD, EUR, GBP, NGN, JPY, CAD, AUD}

// IsValid reports whether the code has the 3-letter shape the upstream
// source expects. Membership in any particular currency set is not checked.
func (c Currency) IsValid() bool {
	if len(c) != 3 {
		return false
	}
	for _, r := range c {
		if (r < 'A' || r > 'Z') && (r < 'a' || r > 'z') {
			return false
		}
	}
	return true
}

func (c Currency) String() string {
	return string(c)
}
