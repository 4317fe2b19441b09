package model

import (
	"time"

	"github.com/google/uuid"
)

// Category is a top-level catalog grouping shown in the product form's
// dropdown and the storefront navigation.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}
