package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/WilliamClf/ecommerce-shop/internal/checkout"
	"github.com/WilliamClf/ecommerce-shop/internal/domain"
	"github.com/WilliamClf/ecommerce-shop/internal/pricing"
)

// OutputFormatter renders command results as text or as a JSON envelope.
type OutputFormatter struct {
	Format string
	Writer io.Writer
}

type CLIResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// Emit writes data as JSON, or calls text to render it for humans.
func (f *OutputFormatter) Emit(data interface{}, text func(w io.Writer)) error {
	if f.Format == "json" {
		enc := json.NewEncoder(f.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(CLIResponse{Status: "ok", Data: data})
	}
	text(f.Writer)
	return nil
}

type CartView struct {
	Lines       []domain.CartLine `json:"lines"`
	ItemCount   int               `json:"itemCount"`
	Total       float64           `json:"total"`
	PayNowTotal float64           `json:"payNowTotal"`
	Savings     float64           `json:"savings"`
	IsPanelOpen bool              `json:"isPanelOpen"`
}

func newCartView(state domain.CartState) CartView {
	total := state.TotalPrice()
	quote := pricing.QuoteCart(total)
	return CartView{
		Lines:       state.Lines,
		ItemCount:   state.TotalItemCount(),
		Total:       total,
		PayNowTotal: quote.PayNowTotal,
		Savings:     quote.Savings,
		IsPanelOpen: state.IsPanelOpen,
	}
}

func writeCart(w io.Writer, v CartView) {
	if len(v.Lines) == 0 {
		fmt.Fprintln(w, "Cart is empty.")
		fmt.Fprintf(w, "%-10s %s\n", "Panel:", panelState(v.IsPanelOpen))
		return
	}

	fmt.Fprintf(w, "%-10s %-24s %5s %10s %10s\n", "ID", "PRODUCT", "QTY", "UNIT", "SUBTOTAL")
	for _, line := range v.Lines {
		fmt.Fprintf(w, "%-10s %-24s %5d %10s %10s\n",
			line.Product.ID, truncate(line.Product.Name, 24), line.Quantity,
			pricing.Format(line.Product.Price.Float64()), pricing.Format(line.Subtotal))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-10s %d\n", "Items:", v.ItemCount)
	fmt.Fprintf(w, "%-10s %s\n", "Total:", pricing.Format(v.Total))
	fmt.Fprintf(w, "%-10s %s (save %s)\n", "Pay now:", pricing.Format(v.PayNowTotal), pricing.Format(v.Savings))
	fmt.Fprintf(w, "%-10s %s\n", "Panel:", panelState(v.IsPanelOpen))
}

func writeProducts(w io.Writer, products []domain.Product) {
	if len(products) == 0 {
		fmt.Fprintln(w, "No products.")
		return
	}

	fmt.Fprintf(w, "%-10s %-24s %10s %10s %10s %14s\n", "ID", "NAME", "FROM", "PRICE", "PAY NOW", "INSTALLMENTS")
	for _, p := range products {
		q := pricing.Quote(p.Price.Float64())
		fmt.Fprintf(w, "%-10s %-24s %10s %10s %10s %14s\n",
			p.ID, truncate(p.Name, 24), pricing.Format(q.ListPrice), pricing.Format(q.Price),
			pricing.Format(q.PayNowPrice), installments(q))
	}
}

func writeProduct(w io.Writer, p domain.Product) {
	q := pricing.Quote(p.Price.Float64())
	fmt.Fprintf(w, "%-14s %s\n", "ID:", p.ID)
	fmt.Fprintf(w, "%-14s %s\n", "Name:", p.Name)
	if p.Description != "" {
		fmt.Fprintf(w, "%-14s %s\n", "Description:", p.Description)
	}
	if p.Category != nil {
		category := p.Category.ID
		if p.Category.Name != "" {
			category = p.Category.Name
		}
		fmt.Fprintf(w, "%-14s %s\n", "Category:", category)
	}
	fmt.Fprintf(w, "%-14s %s\n", "From:", pricing.Format(q.ListPrice))
	fmt.Fprintf(w, "%-14s %s\n", "Price:", pricing.Format(q.InstallmentPrice))
	fmt.Fprintf(w, "%-14s %s\n", "Installments:", installments(q))
	fmt.Fprintf(w, "%-14s %s\n", "Pay now:", pricing.Format(q.PayNowPrice))
}

func writeSummary(w io.Writer, s checkout.Summary, st checkout.Status) {
	shipping := "free"
	if s.Shipping > 0 {
		shipping = pricing.Format(s.Shipping)
	}
	fmt.Fprintf(w, "%-10s %d\n", "Items:", s.ItemCount)
	fmt.Fprintf(w, "%-10s %s\n", "Subtotal:", pricing.Format(s.Subtotal))
	fmt.Fprintf(w, "%-10s %s\n", "Shipping:", shipping)
	fmt.Fprintf(w, "%-10s %s\n", "Total:", pricing.Format(s.Total))
	fmt.Fprintf(w, "%-10s %s (save %s)\n", "Pay now:", pricing.Format(s.PayNowTotal), pricing.Format(s.Savings))
	fmt.Fprintf(w, "%-10s %s\n", "Status:", st.State)
	if st.Error != "" {
		fmt.Fprintf(w, "%-10s %s\n", "Error:", st.Error)
	}
}

func writeOrder(w io.Writer, o domain.Order) {
	fmt.Fprintf(w, "Order %s placed (%s), total %s\n", o.ID, o.Status, pricing.Format(o.Total.Float64()))
}

func writeCustomer(w io.Writer, c *domain.Customer) {
	if c == nil {
		fmt.Fprintln(w, "Not signed in.")
		return
	}
	fmt.Fprintf(w, "Signed in as %s (%s), customer %s\n", c.Name, c.Username, c.ID)
}

func panelState(open bool) string {
	if open {
		return "open"
	}
	return "closed"
}

func installments(q pricing.ProductQuote) string {
	return fmt.Sprintf("%dx %s", q.Installments, pricing.Format(q.InstallmentValue))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
