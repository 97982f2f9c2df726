package models

import (
	"errors"
	"fmt"
)

// ReceiptItem is one line parsed from a receipt photo.
type ReceiptItem struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Count          float64 `json:"count"`
	CountEstimated bool    `json:"count_estimated"`
}

// ReceiptScan is the POST /receipts/scan/ result.
type ReceiptScan struct {
	Date          string        `json:"date"`
	Time          *string       `json:"time"`
	Total         float64       `json:"total"`
	PaymentMethod *string       `json:"payment_method"`
	Items         []ReceiptItem `json:"items"`
}

func (r *ReceiptScan) Validate() error {
	if _, err := ParseDate(r.Date); err != nil {
		return fmt.Errorf("receipt: %w", err)
	}
	for i, it := range r.Items {
		if it.Name == "" {
			return fmt.Errorf("receipt item %d: empty name", i)
		}
	}
	if r.Total < 0 {
		return errors.New("receipt: negative total")
	}
	return nil
}

// TransactionDate joins the receipt date with its HH:MM time, if any.
// A receipt without time yields "YYYY-MM-DD " (trailing space), the form
// the API has always accepted.
func (r *ReceiptScan) TransactionDate() string {
	hm := ""
	if r.Time != nil {
		hm = *r.Time
		if len(hm) > 5 {
			hm = hm[:5]
		}
	}
	return r.Date + " " + hm
}

// Description returns the payment method or "".
func (r *ReceiptScan) Description() string {
	if r.PaymentMethod == nil {
		return ""
	}
	return *r.PaymentMethod
}
