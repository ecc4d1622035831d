package voucher

import (
	"regexp"
	"strings"

	"voucher-engine/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

type DiscountKind string

const (
	DiscountPercentage DiscountKind = "percentage"
	DiscountFixed      DiscountKind = "fixed"
)

var hundred = decimal.NewFromInt(100)

type Discount struct {
	kind  DiscountKind
	value decimal.Decimal
}

func NewDiscount(kind DiscountKind, value decimal.Decimal) (Discount, error) {
	switch kind {
	case DiscountPercentage:
		if value.IsNegative() || value.GreaterThan(hundred) {
			return Discount{}, errs.Reason(ErrInvalidDiscount, "percentage discount must be between 0 and 100, got %s", value)
		}
	case DiscountFixed:
		if value.IsNegative() {
			return Discount{}, errs.Reason(ErrInvalidDiscount, "fixed discount cannot be negative, got %s", value)
		}
	default:
		return Discount{}, errs.Reason(ErrInvalidDiscount, "unknown discount kind %q", kind)
	}
	return Discount{kind: kind, value: value}, nil
}

func (d Discount) Kind() DiscountKind     { return d.kind }
func (d Discount) Value() decimal.Decimal { return d.value }
func (d Discount) IsPercentage() bool     { return d.kind == DiscountPercentage }

// Apply never returns a negative price.
func (d Discount) Apply(price decimal.Decimal) decimal.Decimal {
	var off decimal.Decimal
	if d.IsPercentage() {
		off = price.Mul(d.value).Div(hundred).Round(2)
	} else {
		off = decimal.Min(d.value, price)
	}
	result := price.Sub(off)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

type Currency string

func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !currencyRegex.MatchString(code) {
		return "", errs.Reason(ErrInvalidCurrency, "invalid currency %q", code)
	}
	return Currency(code), nil
}

func (c Currency) String() string {
	return string(c)
}
