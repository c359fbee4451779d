// Package models defines the data structures shared by the Equibull site,
// its backend client and the command line.
package models

// StockSnapshot is the market overview shown at the top of an analysis.
type StockSnapshot struct {
	Symbol        string  `json:"symbol"`
	CurrentPrice  float64 `json:"current_price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Open          float64 `json:"open"`
	PreviousClose float64 `json:"previous_close"`
	Source        string  `json:"source,omitempty"` // e.g., "upstox"
}

// IsUp reports whether the price moved up (or stayed flat) since the previous close.
func (s StockSnapshot) IsUp() bool {
	return s.Change >= 0
}
