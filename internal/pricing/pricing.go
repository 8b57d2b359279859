// Package pricing holds the display pricing policy of the storefront. Every value is
// derived from a unit price or a cart total; nothing here is stored.
package pricing

import "github.com/shopspring/decimal"

const (
	ListMarkup      = 1.15
	PayNowFactor    = 0.9
	SavingsFactor   = 0.1
	Installments    = 10
	DisplayDecimals = 2
)

// ListPrice is the struck-through "from" price shown next to the real one.
func ListPrice(p float64) float64 {
	return p * ListMarkup
}

// InstallmentPrice is the full price when paid in Installments parts.
func InstallmentPrice(p float64) float64 {
	return p
}

func InstallmentValue(p float64) float64 {
	return p / Installments
}

// PayNowPrice is the discounted price for immediate payment.
func PayNowPrice(p float64) float64 {
	return p * PayNowFactor
}

func CartPayNowTotal(total float64) float64 {
	return total * PayNowFactor
}

func CartSavings(total float64) float64 {
	return total * SavingsFactor
}

type ProductQuote struct {
	Price            float64 `json:"price"`
	ListPrice        float64 `json:"listPrice"`
	InstallmentPrice float64 `json:"installmentPrice"`
	Installments     int     `json:"installments"`
	InstallmentValue float64 `json:"installmentValue"`
	PayNowPrice      float64 `json:"payNowPrice"`
}

func Quote(p float64) ProductQuote {
	return ProductQuote{
		Price:            p,
		ListPrice:        ListPrice(p),
		InstallmentPrice: InstallmentPrice(p),
		Installments:     Installments,
		InstallmentValue: InstallmentValue(p),
		PayNowPrice:      PayNowPrice(p),
	}
}

type CartQuote struct {
	Total       float64 `json:"total"`
	PayNowTotal float64 `json:"payNowTotal"`
	Savings     float64 `json:"savings"`
}

func QuoteCart(total float64) CartQuote {
	return CartQuote{
		Total:       total,
		PayNowTotal: CartPayNowTotal(total),
		Savings:     CartSavings(total),
	}
}

// Format renders an amount with two decimal places. Rounding happens here only;
// totals stay unrounded everywhere else.
func Format(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(DisplayDecimals)
}
