package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/receiptkeeper/internal/common"
)

// Transaction is a purchase event with its product line items.
type Transaction struct {
	ID          int64     `json:"id"`
	Date        string    `json:"date"`
	TotalAmount Amount    `json:"total_amount"`
	Description string    `json:"description"`
	Products    []Product `json:"products"`
}

func (t *Transaction) Validate() error {
	if t.ID <= 0 {
		return errors.New("transaction id must be positive")
	}
	if _, err := ParseDate(t.Date); err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	if err := t.TotalAmount.Validate(); err != nil {
		return fmt.Errorf("transaction %d: %w", t.ID, err)
	}
	for i := range t.Products {
		if err := t.Products[i].Validate(); err != nil {
			return fmt.Errorf("transaction %d: %w", t.ID, err)
		}
	}
	return nil
}

// Time parses Date. Invalid dates yield the zero time.
func (t *Transaction) Time() time.Time {
	ts, _ := ParseDate(t.Date)
	return ts
}

// Transactions is the GET /transactions/ payload.
type Transactions []Transaction

func (ts Transactions) Validate() error {
	for i := range ts {
		if err := ts[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TransactionInput is the POST/PUT /transactions/ body.
type TransactionInput struct {
	Date        string `json:"date"`
	TotalAmount Amount `json:"total_amount"`
	Description string `json:"description"`
}

// Product is a line item belonging to a transaction.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       Amount `json:"price"`
	Transaction int64  `json:"transaction,omitempty"`
}

func (p *Product) Validate() error {
	if p.ID <= 0 {
		return errors.New("product id must be positive")
	}
	if err := p.Price.Validate(); err != nil {
		return fmt.Errorf("product %d: %w", p.ID, err)
	}
	return nil
}

// Products is the GET /products/ payload.
type Products []Product

func (ps Products) Validate() error {
	for i := range ps {
		if err := ps[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// ProductInput is the POST/PUT /products/ body.
type ProductInput struct {
	Name        string `json:"name"`
	Price       Amount `json:"price"`
	Transaction int64  `json:"transaction"`
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 ",
	"2006-01-02",
}

// ParseDate accepts the date forms the API and its users produce:
// RFC 3339, "YYYY-MM-DDTHH:MM[:SS]", the space-separated variant and a bare
// date.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidDate, s)
}

// FormatDate renders t as "YYYY-MM-DDTHH:MM", the form accepted by the
// transaction endpoints.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02T15:04")
}

// NormalizeDate validates s and rewrites it to FormatDate's form.
func NormalizeDate(s string) (string, error) {
	ts, err := ParseDate(strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return FormatDate(ts), nil
}
