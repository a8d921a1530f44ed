package app

import "stockroom/internal/core"

// BrandResult is returned by brand write operations.
type BrandResult struct {
	Brand *core.Brand
}

// BrandListResult is returned by ListBrands.
type BrandListResult struct {
	Brands []core.Brand
}

// BrandAvailabilityResult is returned by CheckBrand. A nil field means the
// corresponding probe was not requested.
type BrandAvailabilityResult struct {
	NameTaken *bool
	CodeTaken *bool
}

// OptionResult is returned by option write operations.
type OptionResult struct {
	Option *core.Option
}

// OptionListResult is returned by ListOptions.
type OptionListResult struct {
	Options []core.Option
}

// OptionAvailabilityResult is returned by CheckOption.
type OptionAvailabilityResult struct {
	NameTaken bool
}

// ProductResult is returned by product operations.
type ProductResult struct {
	Product *core.Product
}

// ProductListResult is returned by ListProducts.
type ProductListResult struct {
	Products []core.Product
}

// ShipmentResult is returned by shipment operations.
type ShipmentResult struct {
	Shipment *core.Shipment
}

// ShipmentListResult is returned by ListShipments.
type ShipmentListResult struct {
	Shipments []core.Shipment
}

// StockResult is returned by GetStockLevels.
type StockResult struct {
	Levels []core.StockLevel
}

// BasketResult is returned by SubmitBasket.
type BasketResult struct {
	Basket *core.BasketResult
}

// DispatchResult is returned by single-dispatch operations.
type DispatchResult struct {
	Dispatch *core.Dispatch
}

// DispatchListResult is returned by ListDispatches.
type DispatchListResult struct {
	Dispatches []core.Dispatch
}

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	Summary *core.DashboardSummary
}

// UserResult is returned by GetUser.
type UserResult struct {
	User *core.User
}
