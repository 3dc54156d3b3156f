package models

import "github.com/shopspring/decimal"

// APIResult is the envelope returned by every mutating endpoint.
type APIResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SaleResult extends APIResult with the computed sale total.
type SaleResult struct {
	APIResult
	TotalPrice decimal.Decimal `json:"prix_total,omitempty"`
}
