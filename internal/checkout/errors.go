package checkout

import "errors"

var (
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrNotAuthenticated   = errors.New("sign in to place an order")
	ErrSubmissionInFlight = errors.New("an order is already being submitted")
)
