package app

import "github.com/shopspring/decimal"

// BrandRequest is the input for creating or updating a brand.
type BrandRequest struct {
	Name string
	Code string
}

// OptionRequest is the input for creating or updating an option.
type OptionRequest struct {
	Name        string
	Description string
}

// ProductRequest is the input for creating or updating a product.
type ProductRequest struct {
	Name        string
	BrandID     int
	Description string
	Options     []ProductOptionRequest
}

// ProductOptionRequest is one option line within a ProductRequest.
type ProductOptionRequest struct {
	OptionID int
	SKU      string
}

// ShipmentRequest is the input for creating or updating an incoming shipment.
type ShipmentRequest struct {
	ProductID int
	Remarks   string
	ETA       string // YYYY-MM-DD, empty means unknown
	Status    string
	CreatedBy *int
	Lines     []ShipmentLineRequest
}

// ShipmentLineRequest is a single option line within a ShipmentRequest.
type ShipmentLineRequest struct {
	OptionID     int
	SupplierCost decimal.Decimal
	IncomingQty  int
	LandedCost   decimal.Decimal
	GrossPrice   decimal.Decimal
}

// BasketRequest is the input for submitting a dispatch basket.
type BasketRequest struct {
	CreatedBy *int
	Lines     []BasketLineRequest
}

// BasketLineRequest is a single dispatch within a BasketRequest.
type BasketLineRequest struct {
	InventoryID int
	Quantity    int
	SoldPrice   decimal.Decimal
}
