package core

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StockService owns the inventory ledger. Reads are standalone; every
// mutation is tx-scoped so callers keep quantity changes atomic with the
// shipment or dispatch state transition that caused them.
type StockService interface {
	GetStockLevels(ctx context.Context) ([]StockLevel, error)

	// AddStockTx inserts the ledger row for one received shipment line,
	// fully available: onhandqty = availableqty = qty. The UNIQUE pair
	// (incomingid, optionid) rejects a repeated fan-out.
	AddStockTx(ctx context.Context, tx pgx.Tx, incomingID, optionID, qty int) error
	// ReserveTx decrements availableqty by qty in a single conditional
	// statement. Returns ErrInsufficientStock when the row holds less
	// than qty; no read-modify-write is involved.
	ReserveTx(ctx context.Context, tx pgx.Tx, inventoryID, qty int) error
	// DeductOnHandTx decrements onhandqty by qty on delivery confirmation,
	// with the same conditional shape as ReserveTx.
	DeductOnHandTx(ctx context.Context, tx pgx.Tx, inventoryID, qty int) error
	// StockLevelsForTx reads the joined levels of specific inventory rows
	// inside the caller's transaction, so write results can carry the
	// refreshed state they produced.
	StockLevelsForTx(ctx context.Context, tx pgx.Tx, inventoryIDs []int) ([]StockLevel, error)
}

type stockService struct {
	pool *pgxpool.Pool
}

func NewStockService(pool *pgxpool.Pool) StockService {
	return &stockService{pool: pool}
}

const stockLevelQuery = `
	SELECT inv.inventoryid, inv.incomingid,
	       p.productid, p.productname, b.brandname,
	       inv.optionid, o.optionname, COALESCE(po.sku, ''),
	       inv.onhandqty, inv.availableqty,
	       d.landedcost, d.grossprice,
	       inv.created_at
	FROM inventory inv
	JOIN incoming i          ON i.incomingid = inv.incomingid
	JOIN incoming_details d  ON d.incomingid = inv.incomingid AND d.optionid = inv.optionid
	JOIN products p          ON p.productid = i.productid
	JOIN brands b            ON b.brandid = p.brandid
	JOIN options o           ON o.optionid = inv.optionid
	LEFT JOIN product_options po ON po.productid = p.productid AND po.optionid = inv.optionid
`

func scanStockLevels(rows pgx.Rows) ([]StockLevel, error) {
	defer rows.Close()
	var levels []StockLevel
	for rows.Next() {
		var sl StockLevel
		if err := rows.Scan(
			&sl.InventoryID, &sl.IncomingID,
			&sl.ProductID, &sl.ProductName, &sl.BrandName,
			&sl.OptionID, &sl.OptionName, &sl.SKU,
			&sl.OnHand, &sl.Available,
			&sl.LandedCost, &sl.GrossPrice,
			&sl.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan stock level: %w", err)
		}
		levels = append(levels, sl)
	}
	return levels, rows.Err()
}

func (s *stockService) GetStockLevels(ctx context.Context) ([]StockLevel, error) {
	rows, err := s.pool.Query(ctx, stockLevelQuery+" ORDER BY p.productname, o.optionname, inv.inventoryid")
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	return scanStockLevels(rows)
}

func (s *stockService) StockLevelsForTx(ctx context.Context, tx pgx.Tx, inventoryIDs []int) ([]StockLevel, error) {
	rows, err := tx.Query(ctx, stockLevelQuery+" WHERE inv.inventoryid = ANY($1) ORDER BY inv.inventoryid", inventoryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock levels: %w", err)
	}
	return scanStockLevels(rows)
}

func (s *stockService) AddStockTx(ctx context.Context, tx pgx.Tx, incomingID, optionID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: stock quantity must be positive, got %d", ErrInvalid, qty)
	}
	_, err := tx.Exec(ctx, `
		INSERT INTO inventory (incomingid, optionid, onhandqty, availableqty)
		VALUES ($1, $2, $3, $3)
	`, incomingID, optionID, qty)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("inventory row for shipment %d option %d: %w", incomingID, optionID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert inventory row: %w", err)
	}
	return nil
}

func (s *stockService) ReserveTx(ctx context.Context, tx pgx.Tx, inventoryID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: reserve quantity must be positive, got %d", ErrInvalid, qty)
	}
	tag, err := tx.Exec(ctx, `
		UPDATE inventory
		SET availableqty = availableqty - $1
		WHERE inventoryid = $2 AND availableqty >= $1
	`, qty, inventoryID)
	if err != nil {
		return fmt.Errorf("failed to reserve stock on inventory %d: %w", inventoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory %d: need %d available: %w", inventoryID, qty, ErrInsufficientStock)
	}
	return nil
}

func (s *stockService) DeductOnHandTx(ctx context.Context, tx pgx.Tx, inventoryID, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("%w: deduct quantity must be positive, got %d", ErrInvalid, qty)
	}
	tag, err := tx.Exec(ctx, `
		UPDATE inventory
		SET onhandqty = onhandqty - $1
		WHERE inventoryid = $2 AND onhandqty - $1 >= availableqty
	`, qty, inventoryID)
	if err != nil {
		return fmt.Errorf("failed to deduct on-hand stock on inventory %d: %w", inventoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("inventory %d: cannot deduct %d on hand: %w", inventoryID, qty, ErrInsufficientStock)
	}
	return nil
}
