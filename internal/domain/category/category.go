package category

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// NameByID resolves a category name for display. Products may reference a
// category that no longer exists, so a miss falls back to "Unknown" instead
// of failing.
func NameByID(categories []Category, id int64) string {
	for _, c := range categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Unknown"
}
