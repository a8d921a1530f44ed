package core

import "time"

type Brand struct {
	ID        int       `json:"brandid"`
	Name      string    `json:"brandname"`
	Code      string    `json:"brandcode"`
	CreatedAt time.Time `json:"created_at"`
}

type Option struct {
	ID          int       `json:"optionid"`
	Name        string    `json:"optionname"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductOption is one variant of a product with its stock-keeping unit.
type ProductOption struct {
	OptionID   int    `json:"optionid"`
	OptionName string `json:"optionname"`
	SKU        string `json:"sku"`
}

type Product struct {
	ID          int             `json:"productid"`
	Name        string          `json:"productname"`
	BrandID     int             `json:"brandid"`
	BrandName   string          `json:"brandname"`
	Description string          `json:"description"`
	Options     []ProductOption `json:"options"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string
	BrandID     int
	Description string
	Options     []ProductOptionInput
}

type ProductOptionInput struct {
	OptionID int
	SKU      string
}
