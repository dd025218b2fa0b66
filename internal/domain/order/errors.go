package order

import "errors"

var ErrAddressTooShort = errors.New("shipping address must be at least 10 characters")
