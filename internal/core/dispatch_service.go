package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DispatchService turns basket submissions into outgoing rows and walks
// each dispatch through its delivery lifecycle. A whole basket commits or
// rolls back as one transaction; concurrent baskets against the same
// inventory row serialize on its lock and can never drive availableqty
// negative.
type DispatchService interface {
	SubmitBasket(ctx context.Context, lines []BasketLine, createdBy *int) (*BasketResult, error)
	ListDispatches(ctx context.Context, status *DeliveryStatus) ([]Dispatch, error)
	GetDispatch(ctx context.Context, id int) (*Dispatch, error)
	// UpdateStatus moves one dispatch to a new status. The transition into
	// Received deducts the dispatched quantity from the source inventory
	// row's onhandqty, exactly once; re-saving Received is a no-op and
	// leaving Received is rejected.
	UpdateStatus(ctx context.Context, id int, status DeliveryStatus) (*Dispatch, error)
}

type dispatchService struct {
	pool  *pgxpool.Pool
	stock StockService
}

func NewDispatchService(pool *pgxpool.Pool, stock StockService) DispatchService {
	return &dispatchService{pool: pool, stock: stock}
}

func (s *dispatchService) SubmitBasket(ctx context.Context, lines []BasketLine, createdBy *int) (*BasketResult, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: basket is empty", ErrInvalid)
	}
	for _, line := range lines {
		if line.InventoryID <= 0 {
			return nil, fmt.Errorf("%w: basket line requires an inventory row", ErrInvalid)
		}
		if line.SoldPrice.IsNegative() {
			return nil, fmt.Errorf("%w: sold price cannot be negative", ErrInvalid)
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	batchRef := uuid.New()
	touched := make([]int, 0, len(lines))

	for _, line := range lines {
		var optionID, available int
		err := tx.QueryRow(ctx, `
			SELECT optionid, availableqty
			FROM inventory
			WHERE inventoryid = $1
			FOR UPDATE
		`, line.InventoryID).Scan(&optionID, &available)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("inventory %d: %w", line.InventoryID, ErrNotFound)
			}
			return nil, fmt.Errorf("failed to lock inventory %d: %w", line.InventoryID, err)
		}
		if available <= 0 {
			return nil, fmt.Errorf("inventory %d has no available stock: %w", line.InventoryID, ErrInsufficientStock)
		}

		qty := ClampQuantity(line.Quantity, available)

		_, err = tx.Exec(ctx, `
			INSERT INTO outgoing (inventoryid, optionid, dispatchquantity, soldprice, deliverystatus, batchref, created_by)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, line.InventoryID, optionID, qty, line.SoldPrice, StatusPending, batchRef, createdBy)
		if err != nil {
			return nil, fmt.Errorf("failed to insert dispatch for inventory %d: %w", line.InventoryID, err)
		}

		if err := s.stock.ReserveTx(ctx, tx, line.InventoryID, qty); err != nil {
			return nil, err
		}
		touched = append(touched, line.InventoryID)
	}

	dispatches, err := queryDispatches(ctx, tx, " WHERE out.batchref = $1 ORDER BY out.outgoingid", batchRef)
	if err != nil {
		return nil, err
	}
	stock, err := s.stock.StockLevelsForTx(ctx, tx, touched)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit basket: %w", err)
	}
	return &BasketResult{BatchRef: batchRef, Dispatches: dispatches, Stock: stock}, nil
}

func (s *dispatchService) UpdateStatus(ctx context.Context, id int, status DeliveryStatus) (*Dispatch, error) {
	if _, err := ParseDeliveryStatus(string(status)); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var prev DeliveryStatus
	var inventoryID, qty int
	err = tx.QueryRow(ctx, `
		SELECT deliverystatus, inventoryid, dispatchquantity
		FROM outgoing
		WHERE outgoingid = $1
		FOR UPDATE
	`, id).Scan(&prev, &inventoryID, &qty)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("dispatch %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock dispatch: %w", err)
	}

	switch {
	case prev == StatusReceived && status == StatusReceived:
		// Already confirmed; repeat saves change nothing.
	case prev == StatusReceived:
		return nil, fmt.Errorf("%w: dispatch %d is already received", ErrInvalid, id)
	default:
		if status == StatusReceived {
			_, err = tx.Exec(ctx, `
				UPDATE outgoing
				SET deliverystatus = $1, received_at = now()
				WHERE outgoingid = $2
			`, status, id)
		} else {
			_, err = tx.Exec(ctx, `
				UPDATE outgoing
				SET deliverystatus = $1
				WHERE outgoingid = $2
			`, status, id)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to update dispatch status: %w", err)
		}
		// The goods physically left: take them off the on-hand count in
		// the same transaction as the status flip.
		if status == StatusReceived {
			if err := s.stock.DeductOnHandTx(ctx, tx, inventoryID, qty); err != nil {
				return nil, err
			}
		}
	}

	dispatches, err := queryDispatches(ctx, tx, " WHERE out.outgoingid = $1", id)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit status update: %w", err)
	}
	return &dispatches[0], nil
}

const dispatchQuery = `
	SELECT out.outgoingid, out.inventoryid, out.optionid, o.optionname,
	       p.productname, b.brandname, COALESCE(po.sku, ''),
	       out.dispatchquantity, out.soldprice, out.deliverystatus,
	       out.batchref, out.created_by, out.created_at, out.received_at
	FROM outgoing out
	JOIN inventory inv ON inv.inventoryid = out.inventoryid
	JOIN incoming i    ON i.incomingid = inv.incomingid
	JOIN products p    ON p.productid = i.productid
	JOIN brands b      ON b.brandid = p.brandid
	JOIN options o     ON o.optionid = out.optionid
	LEFT JOIN product_options po ON po.productid = p.productid AND po.optionid = out.optionid
`

func queryDispatches(ctx context.Context, q pgxQuerier, clause string, args ...any) ([]Dispatch, error) {
	rows, err := q.Query(ctx, dispatchQuery+clause, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query dispatches: %w", err)
	}
	defer rows.Close()

	var dispatches []Dispatch
	for rows.Next() {
		var d Dispatch
		if err := rows.Scan(
			&d.ID, &d.InventoryID, &d.OptionID, &d.OptionName,
			&d.ProductName, &d.BrandName, &d.SKU,
			&d.Quantity, &d.SoldPrice, &d.Status,
			&d.BatchRef, &d.CreatedBy, &d.CreatedAt, &d.ReceivedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan dispatch: %w", err)
		}
		dispatches = append(dispatches, d)
	}
	return dispatches, rows.Err()
}

func (s *dispatchService) ListDispatches(ctx context.Context, status *DeliveryStatus) ([]Dispatch, error) {
	if status != nil {
		return queryDispatches(ctx, s.pool, " WHERE out.deliverystatus = $1 ORDER BY out.created_at DESC, out.outgoingid DESC", *status)
	}
	return queryDispatches(ctx, s.pool, " ORDER BY out.created_at DESC, out.outgoingid DESC")
}

func (s *dispatchService) GetDispatch(ctx context.Context, id int) (*Dispatch, error) {
	dispatches, err := queryDispatches(ctx, s.pool, " WHERE out.outgoingid = $1", id)
	if err != nil {
		return nil, err
	}
	if len(dispatches) == 0 {
		return nil, fmt.Errorf("dispatch %d: %w", id, ErrNotFound)
	}
	return &dispatches[0], nil
}
