package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// CreateProductRequest carries the text fields of the multipart
// product form. Image files are parsed separately by the handler.
type CreateProductRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Brand       string `form:"brand"`
	Price       string `form:"price"`
	Featured    bool   `form:"featured"`
}

func (r CreateProductRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Description, validation.Required, validation.Length(1, 5000)),
		validation.Field(&r.Category, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Brand, validation.Length(0, 100)),
		validation.Field(&r.Price, validation.By(validatePrice)),
	)
}

func validatePrice(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	price, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_price", "price must be a valid number")
	}
	if price.IsNegative() {
		return validation.NewError("validation_price", "price must not be negative")
	}
	return nil
}

// PriceDecimal parses the validated price, defaulting to zero.
func (r CreateProductRequest) PriceDecimal() decimal.Decimal {
	if r.Price == "" {
		return decimal.Zero
	}
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return decimal.Zero
	}
	return price
}

type ProductListResponse struct {
	Products []*Product `json:"products"`
	Total    int64      `json:"total"`
	Limit    int        `json:"limit"`
	Offset   int        `json:"offset"`
}
