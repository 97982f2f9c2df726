package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
	"github.com/shopspring/decimal"
)

// Amount is a decimal money value as the API sends it ("12.50").
// It decodes from either a JSON string or a JSON number and always encodes
// as a string.
type Amount string

// NewAmount formats f with two decimals.
func NewAmount(f float64) Amount {
	return Amount(decimal.NewFromFloat(f).StringFixed(2))
}

// AmountFromFloat keeps only the digits f needs: 4.2 becomes "4.2".
func AmountFromFloat(f float64) Amount {
	return Amount(decimal.NewFromFloat(f).String())
}

// ParseAmount accepts "12.50", "12,50" or "12" and normalizes the decimal
// separator.
func ParseAmount(s string) (Amount, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if _, err := decimal.NewFromString(s); err != nil {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidAmount, s)
	}
	return Amount(s), nil
}

func (a *Amount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = Amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: %s", common.ErrInvalidAmount, b)
	}
	*a = Amount(n.String())
	return nil
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}

// Decimal returns the exact value.
func (a Amount) Decimal() (decimal.Decimal, error) {
	d, err := decimal.NewFromString(string(a))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", common.ErrInvalidAmount, string(a))
	}
	return d, nil
}

// Float returns the numeric value.
func (a Amount) Float() (float64, error) {
	d, err := a.Decimal()
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// Validate reports whether a holds a parseable decimal.
func (a Amount) Validate() error {
	_, err := a.Decimal()
	return err
}

func (a Amount) String() string { return string(a) }
