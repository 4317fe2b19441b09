package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a spare part listed in the catalog.
// Image holds the hero image URL, Images the gallery in upload order.
type Product struct {
	ID          uuid.UUID       `json:"id"`
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	Price       decimal.Decimal `json:"price"`
	Featured    bool            `json:"featured"`
	Image       string          `json:"image"`
	Images      []string        `json:"images"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductFilter narrows listing queries.
type ProductFilter struct {
	Category string
	Brand    string
	Search   string
	Limit    int
	Offset   int
}

// DashboardStats backs the admin dashboard cards.
type DashboardStats struct {
	TotalProducts         int64 `json:"totalProducts"`
	TotalCategories       int64 `json:"totalCategories"`
	TotalBrands           int64 `json:"totalBrands"`
	TotalBlogPosts        int64 `json:"totalBlogPosts"`
	TotalFeaturedProducts int64 `json:"totalFeaturedProducts"`
}
