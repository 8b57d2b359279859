package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	q := Quote(100)

	assert.InDelta(t, 115.0, q.ListPrice, 1e-9)
	assert.Equal(t, 100.0, q.InstallmentPrice)
	assert.Equal(t, 10, q.Installments)
	assert.InDelta(t, 10.0, q.InstallmentValue, 1e-9)
	assert.InDelta(t, 90.0, q.PayNowPrice, 1e-9)
}

func TestQuoteCart_DiscountOnThreeHundred(t *testing.T) {
	q := QuoteCart(300)

	assert.Equal(t, 300.0, q.Total)
	assert.InDelta(t, 270.0, q.PayNowTotal, 1e-9)
	assert.InDelta(t, 30.0, q.Savings, 1e-9)
}

func TestQuoteCart_EmptyCart(t *testing.T) {
	q := QuoteCart(0)
	assert.Zero(t, q.PayNowTotal)
	assert.Zero(t, q.Savings)
}

func TestDiscountAndSavingsAddUp(t *testing.T) {
	for _, total := range []float64{0.01, 19.9, 59.7, 1234.56} {
		assert.InDelta(t, total, CartPayNowTotal(total)+CartSavings(total), 1e-9)
	}
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "19.90", Format(19.9))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "115.00", Format(ListPrice(100)))
	assert.Equal(t, "1.99", Format(InstallmentValue(19.9)))
	assert.Equal(t, "17.91", Format(PayNowPrice(19.9)))
}
