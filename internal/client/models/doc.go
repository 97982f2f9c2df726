// Package models defines the wire shapes exchanged with the receipts API
// and the validation each decoded payload must pass before it reaches the
// session or a view.
package models
