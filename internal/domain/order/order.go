package order

import (
	"strings"

	"example.com/marketplace/storefront/internal/domain/timestamp"
)

// Status values are owned by the backend; the client renders whatever
// arrives and only uppercases for display. The constants cover the known
// set but are not enforced.
type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Display() string {
	return strings.ToUpper(string(s))
}

type Item struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int64   `json:"quantity"`
	Price       float64 `json:"price"`
	Subtotal    float64 `json:"subtotal"`
}

type Order struct {
	ID              int64          `json:"id"`
	Status          Status         `json:"status"`
	ShippingAddress string         `json:"shipping_address"`
	TotalAmount     float64        `json:"total_amount"`
	CreatedAt       timestamp.Time `json:"created_at"`
	UpdatedAt       timestamp.Time `json:"updated_at"`
	Items           []Item         `json:"items"`
}
