package cart

import "errors"

var ErrEmptyCart = errors.New("your cart is empty")
