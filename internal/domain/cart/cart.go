package cart

import "example.com/marketplace/storefront/internal/domain/product"

// Item embeds a product snapshot as served by the backend; the client never
// recomputes the subtotal.
type Item struct {
	ID       int64           `json:"id"`
	Quantity int64           `json:"quantity"`
	Product  product.Product `json:"product"`
	Subtotal float64         `json:"subtotal"`
}

type Cart struct {
	Items       []Item  `json:"items"`
	ItemsCount  int64   `json:"items_count"`
	TotalAmount float64 `json:"total_amount"`
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
