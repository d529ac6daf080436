package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// PriceUnit is the suffix every catalog price carries.
	PriceUnit = " FCFA/kg"
	Currency  = "FCFA"

	UnknownProduct = "Unknown"
)

// MarginRate is the fixed share of revenue reported as net margin.
var MarginRate = decimal.NewFromFloat(0.3)

var ErrUnknownStatus = errors.New("unknown order status")

var reLeadingNumber = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))([eE][+-]?\d+)?`)

// PriceAmount extracts the per-kg amount from a display price. Only the
// leading number counts; a price with no leading number is worth zero.
func PriceAmount(price string) decimal.Decimal {
	s := strings.TrimSpace(strings.Replace(price, PriceUnit, "", 1))
	m := reLeadingNumber.FindStringSubmatch(s)
	if m == nil {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(m[1], ".") + m[2])
	if err != nil {
		return decimal.Zero
	}
	return d
}

// OrderReference renders the human-facing id, e.g. 7 -> "#CMD007".
func OrderReference(id int) string {
	return fmt.Sprintf("#CMD%03d", id)
}

// ParseStatus maps form input onto the closed status set. Empty input
// means the form was left at its default.
func ParseStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.TrimSpace(s)) {
	case "", StatusPending:
		return StatusPending, nil
	case StatusPaid:
		return StatusPaid, nil
	case StatusDelivered:
		return StatusDelivered, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// RevenueLabel and MarginLabel format stats the way the dashboard shows them.
func (s Stats) RevenueLabel() string {
	return s.TotalRevenue.StringFixed(0) + " " + Currency
}

func (s Stats) MarginLabel() string {
	return "+" + s.NetMargin.StringFixed(0) + " " + Currency
}
