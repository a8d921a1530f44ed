package app

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/core"
)

type appService struct {
	catalog  core.CatalogService
	intake   core.IntakeService
	stock    core.StockService
	dispatch core.DispatchService
	reports  core.ReportingService
	users    core.UserService
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	catalog core.CatalogService,
	intake core.IntakeService,
	stock core.StockService,
	dispatch core.DispatchService,
	reports core.ReportingService,
	users core.UserService,
) ApplicationService {
	return &appService{
		catalog:  catalog,
		intake:   intake,
		stock:    stock,
		dispatch: dispatch,
		reports:  reports,
		users:    users,
	}
}

// ── Catalog ───────────────────────────────────────────────────────────────────

func (s *appService) ListBrands(ctx context.Context) (*BrandListResult, error) {
	brands, err := s.catalog.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	return &BrandListResult{Brands: brands}, nil
}

func (s *appService) CreateBrand(ctx context.Context, req BrandRequest) (*BrandResult, error) {
	brand, err := s.catalog.CreateBrand(ctx, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	return &BrandResult{Brand: brand}, nil
}

func (s *appService) UpdateBrand(ctx context.Context, id int, req BrandRequest) (*BrandResult, error) {
	brand, err := s.catalog.UpdateBrand(ctx, id, req.Name, req.Code)
	if err != nil {
		return nil, err
	}
	return &BrandResult{Brand: brand}, nil
}

func (s *appService) CheckBrand(ctx context.Context, name, code string, excludeID int) (*BrandAvailabilityResult, error) {
	result := &BrandAvailabilityResult{}
	if name != "" {
		taken, err := s.catalog.BrandNameTaken(ctx, name, excludeID)
		if err != nil {
			return nil, err
		}
		result.NameTaken = &taken
	}
	if code != "" {
		taken, err := s.catalog.BrandCodeTaken(ctx, code, excludeID)
		if err != nil {
			return nil, err
		}
		result.CodeTaken = &taken
	}
	return result, nil
}

func (s *appService) ListOptions(ctx context.Context) (*OptionListResult, error) {
	options, err := s.catalog.ListOptions(ctx)
	if err != nil {
		return nil, err
	}
	return &OptionListResult{Options: options}, nil
}

func (s *appService) CreateOption(ctx context.Context, req OptionRequest) (*OptionResult, error) {
	option, err := s.catalog.CreateOption(ctx, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return &OptionResult{Option: option}, nil
}

func (s *appService) UpdateOption(ctx context.Context, id int, req OptionRequest) (*OptionResult, error) {
	option, err := s.catalog.UpdateOption(ctx, id, req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	return &OptionResult{Option: option}, nil
}

func (s *appService) CheckOption(ctx context.Context, name string, excludeID int) (*OptionAvailabilityResult, error) {
	taken, err := s.catalog.OptionNameTaken(ctx, name, excludeID)
	if err != nil {
		return nil, err
	}
	return &OptionAvailabilityResult{NameTaken: taken}, nil
}

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	return &ProductListResult{Products: products}, nil
}

func (s *appService) GetProduct(ctx context.Context, id int) (*ProductResult, error) {
	product, err := s.catalog.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error) {
	product, err := s.catalog.CreateProduct(ctx, productInput(req))
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

func (s *appService) UpdateProduct(ctx context.Context, id int, req ProductRequest) (*ProductResult, error) {
	product, err := s.catalog.UpdateProduct(ctx, id, productInput(req))
	if err != nil {
		return nil, err
	}
	return &ProductResult{Product: product}, nil
}

// ── Intake ────────────────────────────────────────────────────────────────────

func (s *appService) ListShipments(ctx context.Context, status *string) (*ShipmentListResult, error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	shipments, err := s.intake.ListShipments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ShipmentListResult{Shipments: shipments}, nil
}

func (s *appService) GetShipment(ctx context.Context, id int) (*ShipmentResult, error) {
	shipment, err := s.intake.GetShipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return &ShipmentResult{Shipment: shipment}, nil
}

func (s *appService) CreateShipment(ctx context.Context, req ShipmentRequest) (*ShipmentResult, error) {
	in, err := shipmentInput(req)
	if err != nil {
		return nil, err
	}
	shipment, err := s.intake.CreateShipment(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ShipmentResult{Shipment: shipment}, nil
}

func (s *appService) UpdateShipment(ctx context.Context, id int, req ShipmentRequest) (*ShipmentResult, error) {
	in, err := shipmentInput(req)
	if err != nil {
		return nil, err
	}
	shipment, err := s.intake.UpdateShipment(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &ShipmentResult{Shipment: shipment}, nil
}

// ── Stock and dispatch ────────────────────────────────────────────────────────

func (s *appService) GetStockLevels(ctx context.Context) (*StockResult, error) {
	levels, err := s.stock.GetStockLevels(ctx)
	if err != nil {
		return nil, err
	}
	return &StockResult{Levels: levels}, nil
}

func (s *appService) SubmitBasket(ctx context.Context, req BasketRequest) (*BasketResult, error) {
	lines := make([]core.BasketLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.BasketLine{
			InventoryID: l.InventoryID,
			Quantity:    l.Quantity,
			SoldPrice:   l.SoldPrice,
		}
	}
	basket, err := s.dispatch.SubmitBasket(ctx, lines, req.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &BasketResult{Basket: basket}, nil
}

func (s *appService) ListDispatches(ctx context.Context, status *string) (*DispatchListResult, error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	dispatches, err := s.dispatch.ListDispatches(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &DispatchListResult{Dispatches: dispatches}, nil
}

func (s *appService) GetDispatch(ctx context.Context, id int) (*DispatchResult, error) {
	dispatch, err := s.dispatch.GetDispatch(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DispatchResult{Dispatch: dispatch}, nil
}

func (s *appService) UpdateDispatchStatus(ctx context.Context, id int, status string) (*DispatchResult, error) {
	parsed, err := core.ParseDeliveryStatus(status)
	if err != nil {
		return nil, err
	}
	dispatch, err := s.dispatch.UpdateStatus(ctx, id, parsed)
	if err != nil {
		return nil, err
	}
	return &DispatchResult{Dispatch: dispatch}, nil
}

// ── Reporting and identity ────────────────────────────────────────────────────

func (s *appService) GetDashboard(ctx context.Context, asOf string) (*DashboardResult, error) {
	at := time.Now()
	if asOf != "" {
		parsed, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			return nil, fmt.Errorf("%w: as_of must be YYYY-MM-DD, got %q", core.ErrInvalid, asOf)
		}
		at = parsed
	}
	summary, err := s.reports.GetDashboard(ctx, at)
	if err != nil {
		return nil, err
	}
	return &DashboardResult{Summary: summary}, nil
}

func (s *appService) GetUser(ctx context.Context, id int) (*UserResult, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &UserResult{User: user}, nil
}

// ── private helpers ───────────────────────────────────────────────────────────

func productInput(req ProductRequest) core.ProductInput {
	opts := make([]core.ProductOptionInput, len(req.Options))
	for i, o := range req.Options {
		opts[i] = core.ProductOptionInput{OptionID: o.OptionID, SKU: o.SKU}
	}
	return core.ProductInput{
		Name:        req.Name,
		BrandID:     req.BrandID,
		Description: req.Description,
		Options:     opts,
	}
}

func shipmentInput(req ShipmentRequest) (core.ShipmentInput, error) {
	status, err := core.ParseDeliveryStatus(req.Status)
	if err != nil {
		return core.ShipmentInput{}, err
	}

	var eta *time.Time
	if req.ETA != "" {
		parsed, err := time.Parse("2006-01-02", req.ETA)
		if err != nil {
			return core.ShipmentInput{}, fmt.Errorf("%w: eta must be YYYY-MM-DD, got %q", core.ErrInvalid, req.ETA)
		}
		eta = &parsed
	}

	lines := make([]core.ShipmentLineInput, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = core.ShipmentLineInput{
			OptionID:     l.OptionID,
			SupplierCost: l.SupplierCost,
			IncomingQty:  l.IncomingQty,
			LandedCost:   l.LandedCost,
			GrossPrice:   l.GrossPrice,
		}
	}
	return core.ShipmentInput{
		ProductID: req.ProductID,
		Remarks:   req.Remarks,
		ETA:       eta,
		Status:    status,
		CreatedBy: req.CreatedBy,
		Lines:     lines,
	}, nil
}

func statusFilter(status *string) (*core.DeliveryStatus, error) {
	if status == nil || *status == "" {
		return nil, nil
	}
	parsed, err := core.ParseDeliveryStatus(*status)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
