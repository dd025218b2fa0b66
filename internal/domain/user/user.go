package user

import "example.com/marketplace/storefront/internal/domain/timestamp"

type User struct {
	ID        int64          `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	FullName  string         `json:"full_name"`
	IsActive  bool           `json:"is_active"`
	CreatedAt timestamp.Time `json:"created_at"`
}
