package stats

type ProductStats struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	OutOfStock int64 `json:"out_of_stock"`
}

type OrderStats struct {
	Total   int64   `json:"total"`
	Revenue float64 `json:"revenue"`
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type Stats struct {
	Products   ProductStats    `json:"products"`
	Orders     OrderStats      `json:"orders"`
	Categories []CategoryCount `json:"categories"`
}
