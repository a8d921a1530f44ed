package core_test

import (
	"context"
	"errors"
	"testing"

	"stockroom/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// receiveStock creates a Received shipment and returns the inventory row id
// for the given option.
func receiveStock(t *testing.T, pool *pgxpool.Pool, optionID, qty int) int {
	t.Helper()
	ctx := context.Background()

	svc := core.NewIntakeService(pool, core.NewStockService(pool))
	shipment, err := svc.CreateShipment(ctx, core.ShipmentInput{
		ProductID: 1,
		Status:    core.StatusReceived,
		Lines: []core.ShipmentLineInput{
			{OptionID: optionID, SupplierCost: decimal.NewFromInt(40), IncomingQty: qty,
				LandedCost: decimal.NewFromInt(55), GrossPrice: decimal.NewFromInt(90)},
		},
	})
	if err != nil {
		t.Fatalf("CreateShipment failed: %v", err)
	}

	var inventoryID int
	err = pool.QueryRow(ctx,
		"SELECT inventoryid FROM inventory WHERE incomingid = $1 AND optionid = $2",
		shipment.ID, optionID,
	).Scan(&inventoryID)
	if err != nil {
		t.Fatalf("Failed to resolve inventory row: %v", err)
	}
	return inventoryID
}

func stockLevel(t *testing.T, pool *pgxpool.Pool, inventoryID int) (onHand, available int) {
	t.Helper()
	err := pool.QueryRow(context.Background(),
		"SELECT onhandqty, availableqty FROM inventory WHERE inventoryid = $1", inventoryID,
	).Scan(&onHand, &available)
	if err != nil {
		t.Fatalf("Failed to read inventory row: %v", err)
	}
	return onHand, available
}

func TestDispatch_BasketDecrementsAvailable(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	invID := receiveStock(t, pool, 1, 50)
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 10, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}

	if len(result.Dispatches) != 1 {
		t.Fatalf("Expected 1 dispatch, got %d", len(result.Dispatches))
	}
	d := result.Dispatches[0]
	if d.Quantity != 10 || d.Status != core.StatusPending {
		t.Errorf("Unexpected dispatch: %+v", d)
	}
	if d.BatchRef != result.BatchRef {
		t.Errorf("Dispatch batchref %s does not match result %s", d.BatchRef, result.BatchRef)
	}

	// The result carries the refreshed level; the ledger agrees.
	if len(result.Stock) != 1 || result.Stock[0].Available != 40 || result.Stock[0].OnHand != 50 {
		t.Errorf("Unexpected refreshed stock: %+v", result.Stock)
	}
	onHand, available := stockLevel(t, pool, invID)
	if onHand != 50 || available != 40 {
		t.Errorf("Expected onhand=50 available=40, got onhand=%d available=%d", onHand, available)
	}
}

func TestDispatch_QuantityClamping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	invID := receiveStock(t, pool, 1, 40)
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	// Over-ask clamps to the full available quantity.
	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 99, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}
	if result.Dispatches[0].Quantity != 40 {
		t.Errorf("Expected quantity clamped to 40, got %d", result.Dispatches[0].Quantity)
	}
	if _, available := stockLevel(t, pool, invID); available != 0 {
		t.Errorf("Expected available=0 after clamped dispatch, got %d", available)
	}
}

func TestDispatch_UnderAskClampsToOne(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	invID := receiveStock(t, pool, 1, 5)
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 0, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}
	if result.Dispatches[0].Quantity != 1 {
		t.Errorf("Expected quantity clamped up to 1, got %d", result.Dispatches[0].Quantity)
	}
}

func TestDispatch_EmptyBasketAndExhaustedRowFail(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	if _, err := svc.SubmitBasket(ctx, nil, nil); !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid for empty basket, got %v", err)
	}

	okID := receiveStock(t, pool, 1, 20)
	emptyID := receiveStock(t, pool, 2, 10)
	if _, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: emptyID, Quantity: 10, SoldPrice: decimal.NewFromInt(95)},
	}, nil); err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}

	// Second line draws from an exhausted row; the whole basket rolls back.
	_, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: okID, Quantity: 5, SoldPrice: decimal.NewFromInt(95)},
		{InventoryID: emptyID, Quantity: 1, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if !errors.Is(err, core.ErrInsufficientStock) {
		t.Fatalf("Expected ErrInsufficientStock, got %v", err)
	}
	if _, available := stockLevel(t, pool, okID); available != 20 {
		t.Errorf("Expected first line rolled back (available=20), got %d", available)
	}

	var count int
	if err := pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM outgoing WHERE inventoryid = $1", okID,
	).Scan(&count); err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected no outgoing rows for rolled-back line, got %d", count)
	}

	// A missing inventory row fails the basket too.
	_, err = svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: 9999, Quantity: 1, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound for unknown inventory row, got %v", err)
	}
}

func TestDispatch_ConfirmationDeductsOnHandOnce(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	invID := receiveStock(t, pool, 1, 50)
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 10, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}
	dispatchID := result.Dispatches[0].ID

	// Pending -> Ongoing touches nothing in the ledger.
	if _, err := svc.UpdateStatus(ctx, dispatchID, core.StatusOngoing); err != nil {
		t.Fatalf("UpdateStatus to Ongoing failed: %v", err)
	}
	if onHand, _ := stockLevel(t, pool, invID); onHand != 50 {
		t.Errorf("Expected onhand unchanged at 50, got %d", onHand)
	}

	// Ongoing -> Received deducts on-hand by the dispatched quantity.
	d, err := svc.UpdateStatus(ctx, dispatchID, core.StatusReceived)
	if err != nil {
		t.Fatalf("UpdateStatus to Received failed: %v", err)
	}
	if d.Status != core.StatusReceived || d.ReceivedAt == nil {
		t.Errorf("Expected received dispatch with timestamp, got %+v", d)
	}
	onHand, available := stockLevel(t, pool, invID)
	if onHand != 40 || available != 40 {
		t.Errorf("Expected onhand=40 available=40 after confirmation, got onhand=%d available=%d", onHand, available)
	}

	// Re-saving Received is a no-op, not a second deduction.
	if _, err := svc.UpdateStatus(ctx, dispatchID, core.StatusReceived); err != nil {
		t.Fatalf("Repeated UpdateStatus to Received failed: %v", err)
	}
	if onHand, _ := stockLevel(t, pool, invID); onHand != 40 {
		t.Errorf("Expected onhand to stay 40 after repeat save, got %d", onHand)
	}

	// Leaving Received is rejected.
	if _, err := svc.UpdateStatus(ctx, dispatchID, core.StatusPending); !errors.Is(err, core.ErrInvalid) {
		t.Fatalf("Expected ErrInvalid for leaving Received, got %v", err)
	}
}

// Full chain: receive 50, dispatch 10, confirm delivery.
func TestDispatch_FullLifecycle(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	stock := core.NewStockService(pool)
	invID := receiveStock(t, pool, 1, 50)
	svc := core.NewDispatchService(pool, stock)

	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 10, SoldPrice: decimal.NewFromInt(95)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}
	if result.Stock[0].Available != 40 || result.Stock[0].OnHand != 50 {
		t.Fatalf("After dispatch: expected onhand=50 available=40, got %+v", result.Stock[0])
	}

	if _, err := svc.UpdateStatus(ctx, result.Dispatches[0].ID, core.StatusReceived); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	levels, err := stock.GetStockLevels(ctx)
	if err != nil {
		t.Fatalf("GetStockLevels failed: %v", err)
	}
	if len(levels) != 1 || levels[0].OnHand != 40 || levels[0].Available != 40 {
		t.Errorf("After delivery: expected onhand=40 available=40, got %+v", levels)
	}
}

func TestDispatch_ListAndGet(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	ctx := context.Background()
	invID := receiveStock(t, pool, 1, 50)
	svc := core.NewDispatchService(pool, core.NewStockService(pool))

	result, err := svc.SubmitBasket(ctx, []core.BasketLine{
		{InventoryID: invID, Quantity: 2, SoldPrice: decimal.NewFromInt(95)},
		{InventoryID: invID, Quantity: 3, SoldPrice: decimal.NewFromInt(90)},
	}, nil)
	if err != nil {
		t.Fatalf("SubmitBasket failed: %v", err)
	}
	if len(result.Dispatches) != 2 {
		t.Fatalf("Expected 2 dispatches, got %d", len(result.Dispatches))
	}

	pending := core.StatusPending
	list, err := svc.ListDispatches(ctx, &pending)
	if err != nil {
		t.Fatalf("ListDispatches failed: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("Expected 2 pending dispatches, got %d", len(list))
	}
	if list[0].ProductName != "Air Max 90" || list[0].BrandName != "Nike" {
		t.Errorf("Expected joined catalog data, got %+v", list[0])
	}

	got, err := svc.GetDispatch(ctx, result.Dispatches[0].ID)
	if err != nil {
		t.Fatalf("GetDispatch failed: %v", err)
	}
	if got.ID != result.Dispatches[0].ID {
		t.Errorf("GetDispatch returned wrong row: %+v", got)
	}

	if _, err := svc.GetDispatch(ctx, 9999); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}
