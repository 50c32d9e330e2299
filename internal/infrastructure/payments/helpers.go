package payments

import (
	"net/url"

	"github.com/shopspring/decimal"
)

// toMinorUnits converts 12.34 into 1234.
func toMinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}

func withOrderID(rawURL, orderID string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	q.Set("orderId", orderID)
	u.RawQuery = q.Encode()
	return u.String()
}
