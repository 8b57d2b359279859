package domain

type City struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Address  string `json:"address,omitempty"`
	Zipcode  string `json:"zipcode,omitempty"`
	City     *City  `json:"city,omitempty"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
	Address  string `json:"address"`
	Zipcode  string `json:"zipcode"`
	CityID   string `json:"cityId,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResult is returned by register and login. Token is opaque to the storefront.
type AuthResult struct {
	Token    string   `json:"token"`
	Customer Customer `json:"customer"`
}
