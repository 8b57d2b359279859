package domain

type Favorite struct {
	ID      string  `json:"id"`
	Product Product `json:"product"`
}

type FavoriteRequest struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
}

type FavoriteToggle struct {
	Added   bool `json:"added,omitempty"`
	Removed bool `json:"removed,omitempty"`
}
