package checkout

import "errors"

var (
	ErrEmptyCart       = errors.New("cart is empty, nothing to checkout")
	ErrUnresolvedLines = errors.New("cart has items unavailable in the current catalog")
	ErrValidation      = errors.New("payment form is incomplete")
	ErrPaymentDeclined = errors.New("payment was declined")
)
