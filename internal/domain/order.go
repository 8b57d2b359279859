package domain

import "time"

type OrderStatus string

const (
	OrderStatusNew OrderStatus = "NEW"
)

type EntityRef struct {
	ID string `json:"id"`
}

type OrderItemRequest struct {
	Product  EntityRef `json:"product"`
	Quantity int       `json:"quantity"`
	Value    float64   `json:"value"`
}

type OrderRequest struct {
	Customer EntityRef          `json:"customer"`
	Shipping float64            `json:"shipping"`
	Status   OrderStatus        `json:"status"`
	Total    float64            `json:"total"`
	Items    []OrderItemRequest `json:"items"`
}

type OrderItem struct {
	ID       string  `json:"id,omitempty"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
	Value    Price   `json:"value"`
}

type Order struct {
	ID        string      `json:"id"`
	Status    OrderStatus `json:"status"`
	Shipping  Price       `json:"shipping"`
	Total     Price       `json:"total"`
	Items     []OrderItem `json:"items,omitempty"`
	CreatedAt *time.Time  `json:"createdAt,omitempty"`
}
