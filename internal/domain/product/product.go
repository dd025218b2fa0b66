package product

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int64   `json:"stock"`
	CategoryID  int64   `json:"category_id"`
	IsActive    bool    `json:"is_active"`
	ImageURL    string  `json:"image_url"`
}

// ListFilter mirrors the filter controls on the products page. Nil fields
// are omitted from the query string.
type ListFilter struct {
	Search     string
	CategoryID *int64
	MinPrice   *float64
	MaxPrice   *float64
	Limit      int
}
