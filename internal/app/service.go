package app

import "context"

// ApplicationService is the single interface all adapters call. It decouples
// presentation from business logic; implementations contain no display logic.
type ApplicationService interface {
	// ListBrands returns all brands ordered by name.
	ListBrands(ctx context.Context) (*BrandListResult, error)

	// CreateBrand registers a new brand. Name and code are globally unique.
	CreateBrand(ctx context.Context, req BrandRequest) (*BrandResult, error)

	// UpdateBrand renames or recodes an existing brand.
	UpdateBrand(ctx context.Context, id int, req BrandRequest) (*BrandResult, error)

	// CheckBrand probes name and/or code availability. Empty fields are not
	// probed; excludeID lets an edit form skip its own record.
	CheckBrand(ctx context.Context, name, code string, excludeID int) (*BrandAvailabilityResult, error)

	// ListOptions returns all options ordered by name.
	ListOptions(ctx context.Context) (*OptionListResult, error)

	// CreateOption registers a new option. Names are globally unique.
	CreateOption(ctx context.Context, req OptionRequest) (*OptionResult, error)

	// UpdateOption edits an existing option.
	UpdateOption(ctx context.Context, id int, req OptionRequest) (*OptionResult, error)

	// CheckOption probes option name availability.
	CheckOption(ctx context.Context, name string, excludeID int) (*OptionAvailabilityResult, error)

	// ListProducts returns all products with their option/SKU lines.
	ListProducts(ctx context.Context) (*ProductListResult, error)

	// GetProduct returns a single product by id.
	GetProduct(ctx context.Context, id int) (*ProductResult, error)

	// CreateProduct registers a product with at least one option.
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error)

	// UpdateProduct replaces a product's fields and option lines.
	UpdateProduct(ctx context.Context, id int, req ProductRequest) (*ProductResult, error)

	// ListShipments returns incoming shipments, optionally filtered by
	// delivery status.
	ListShipments(ctx context.Context, status *string) (*ShipmentListResult, error)

	// GetShipment returns a single shipment with its lines.
	GetShipment(ctx context.Context, id int) (*ShipmentResult, error)

	// CreateShipment records an incoming shipment. A shipment created as
	// Received immediately fans out into the inventory ledger.
	CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error)

	// UpdateShipment edits a shipment. The transition into Received fans
	// out the lines into the ledger exactly once.
	UpdateShipment(ctx context.Context, id int, req ShipmentRequest) (*ShipmentResult, error)

	// GetStockLevels returns the inventory ledger joined with catalog data.
	GetStockLevels(ctx context.Context) (*StockResult, error)

	// SubmitBasket dispatches stock from several inventory rows in one
	// atomic batch and returns the refreshed levels it touched.
	SubmitBasket(ctx context.Context, req BasketRequest) (*BasketResult, error)

	// ListDispatches returns outgoing dispatches, optionally by status.
	ListDispatches(ctx context.Context, status *string) (*DispatchListResult, error)

	// GetDispatch returns a single dispatch by id.
	GetDispatch(ctx context.Context, id int) (*DispatchResult, error)

	// UpdateDispatchStatus moves a dispatch through its delivery lifecycle.
	// Confirming receipt deducts the dispatched quantity from on-hand stock.
	UpdateDispatchStatus(ctx context.Context, id int, status string) (*DispatchResult, error)

	// GetDashboard computes the month-over-month dashboard figures.
	// asOf is YYYY-MM-DD; empty means today.
	GetDashboard(ctx context.Context, asOf string) (*DashboardResult, error)

	// GetUser returns a user profile by id.
	GetUser(ctx context.Context, id int) (*UserResult, error)
}
