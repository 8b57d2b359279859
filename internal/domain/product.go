package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       Price     `json:"price"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    *Category `json:"category,omitempty"`
}

// Price is a unit price coerced to a number when it enters the system.
// The backend serializes decimal columns as strings, so both "19.90" and 19.9 decode to 19.9.
// Anything that cannot be read as a number decodes to 0.
type Price float64

func (p Price) Float64() float64 {
	return float64(p)
}

func (p Price) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(p))
}

func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price(coercePrice(data))
	return nil
}

// ParsePrice converts a textual price, falling back to 0 when it is not numeric.
func ParsePrice(s string) Price {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return Price(finite(d.InexactFloat64()))
}

func coercePrice(data []byte) float64 {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return 0
		}
		return ParsePrice(s).Float64()
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return 0
	}
	return finite(f)
}

// finite maps values that cannot be stored as JSON (overflow, NaN) to 0.
func finite(f float64) float64 {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}
	return f
}
