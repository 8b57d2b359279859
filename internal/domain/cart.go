package domain

type CartLine struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

// NewCartLine builds a line whose subtotal matches quantity x unit price.
func NewCartLine(product Product, quantity int) CartLine {
	return CartLine{
		Product:  product,
		Quantity: quantity,
		Subtotal: float64(quantity) * product.Price.Float64(),
	}
}

type CartState struct {
	Lines       []CartLine `json:"lines"`
	IsPanelOpen bool       `json:"isPanelOpen"`
}

func (c CartState) TotalItemCount() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

func (c CartState) TotalPrice() float64 {
	total := 0.0
	for _, line := range c.Lines {
		total += line.Subtotal
	}
	return total
}
