package market

import (
	"fmt"
	"strings"
)

// Denomination is a currency a result or balance is reported in.
type Denomination string

const (
	USD     Denomination = "USD"
	IDR     Denomination = "IDR"
	USDCent Denomination = "USD_CENT"
)

// DefaultIDRPerUSD is the static conversion rate. There is no live feed.
const DefaultIDRPerUSD = 15500.0

// CentsPerUnit converts a primary amount to its cent sub-denomination.
const CentsPerUnit = 100.0

func ParseDenomination(s string) (Denomination, error) {
	switch Denomination(strings.ToUpper(strings.TrimSpace(s))) {
	case USD:
		return USD, nil
	case IDR:
		return IDR, nil
	case USDCent, "CENT", "USC":
		return USDCent, nil
	}
	return "", fmt.Errorf("unknown denomination %q", s)
}

// Convert expresses a USD amount in the given denomination using a fixed
// IDR-per-USD rate.
func Convert(usd float64, to Denomination, idrPerUSD float64) (float64, error) {
	switch to {
	case USD:
		return usd, nil
	case IDR:
		return usd * idrPerUSD, nil
	case USDCent:
		return usd * CentsPerUnit, nil
	}
	return 0, fmt.Errorf("cannot convert to %q", to)
}
