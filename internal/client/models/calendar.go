package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Calendar maps a day-of-month (daily view) or month number (monthly view)
// to the net amount booked in that period.
type Calendar map[int]float64

func (c *Calendar) UnmarshalJSON(b []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out := make(Calendar, len(raw))
	for k, v := range raw {
		n, err := strconv.Atoi(k)
		if err != nil {
			return fmt.Errorf("calendar key %q is not a number", k)
		}
		out[n] = v
	}
	*c = out
	return nil
}

// ValidateRange checks every key is within [1, max].
func (c Calendar) ValidateRange(max int) error {
	for k := range c {
		if k < 1 || k > max {
			return fmt.Errorf("calendar key %d out of range 1..%d", k, max)
		}
	}
	return nil
}

// Validate checks keys fit the largest possible range (31 days).
func (c Calendar) Validate() error {
	return c.ValidateRange(31)
}
