package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// IntakeService manages incoming shipments. The moment a shipment turns
// Received its lines fan out into the inventory ledger, one row per option,
// inside the same transaction as the status write. A shipment fans out at
// most once; afterwards its lines are frozen.
type IntakeService interface {
	CreateShipment(ctx context.Context, in ShipmentInput) (*Shipment, error)
	UpdateShipment(ctx context.Context, id int, in ShipmentInput) (*Shipment, error)
	GetShipment(ctx context.Context, id int) (*Shipment, error)
	ListShipments(ctx context.Context, status *DeliveryStatus) ([]Shipment, error)
}

type intakeService struct {
	pool  *pgxpool.Pool
	stock StockService
}

func NewIntakeService(pool *pgxpool.Pool, stock StockService) IntakeService {
	return &intakeService{pool: pool, stock: stock}
}

func validateShipment(in ShipmentInput) error {
	if in.ProductID <= 0 {
		return fmt.Errorf("%w: shipment requires a product", ErrInvalid)
	}
	if _, err := ParseDeliveryStatus(string(in.Status)); err != nil {
		return err
	}
	if len(in.Lines) == 0 {
		return fmt.Errorf("%w: shipment requires at least one line", ErrInvalid)
	}
	seen := make(map[int]bool, len(in.Lines))
	for _, line := range in.Lines {
		if line.OptionID <= 0 {
			return fmt.Errorf("%w: line option id must be positive", ErrInvalid)
		}
		if seen[line.OptionID] {
			return fmt.Errorf("%w: option %d listed twice", ErrInvalid, line.OptionID)
		}
		seen[line.OptionID] = true
		if line.IncomingQty <= 0 {
			return fmt.Errorf("%w: incoming quantity for option %d must be positive, got %d",
				ErrInvalid, line.OptionID, line.IncomingQty)
		}
		if line.SupplierCost.IsNegative() || line.LandedCost.IsNegative() || line.GrossPrice.IsNegative() {
			return fmt.Errorf("%w: costs for option %d cannot be negative", ErrInvalid, line.OptionID)
		}
	}
	return nil
}

func (s *intakeService) CreateShipment(ctx context.Context, in ShipmentInput) (*Shipment, error) {
	if err := validateShipment(in); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var shipmentID int
	err = tx.QueryRow(ctx, `
		INSERT INTO incoming (productid, remarks, eta, deliverystatus, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING incomingid
	`, in.ProductID, in.Remarks, in.ETA, in.Status, in.CreatedBy).Scan(&shipmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert shipment: %w", err)
	}

	if err := insertShipmentLines(ctx, tx, shipmentID, in.Lines); err != nil {
		return nil, err
	}

	// Created directly as Received: fan out to the ledger in the same tx.
	if in.Status == StatusReceived {
		if err := s.fanOut(ctx, tx, shipmentID, in.Lines); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit shipment: %w", err)
	}
	return s.GetShipment(ctx, shipmentID)
}

func (s *intakeService) UpdateShipment(ctx context.Context, id int, in ShipmentInput) (*Shipment, error) {
	if in.ProductID <= 0 {
		return nil, fmt.Errorf("%w: shipment requires a product", ErrInvalid)
	}
	if _, err := ParseDeliveryStatus(string(in.Status)); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var prev DeliveryStatus
	err = tx.QueryRow(ctx,
		"SELECT deliverystatus FROM incoming WHERE incomingid = $1 FOR UPDATE", id,
	).Scan(&prev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("shipment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to lock shipment: %w", err)
	}

	if prev == StatusReceived {
		// The ledger already holds this shipment's stock. Only remarks
		// and eta may still change; lines and status are frozen.
		if in.Status != StatusReceived {
			return nil, fmt.Errorf("%w: shipment %d is already received", ErrInvalid, id)
		}
		if len(in.Lines) > 0 {
			return nil, fmt.Errorf("%w: lines of received shipment %d cannot be edited", ErrInvalid, id)
		}
		_, err = tx.Exec(ctx, `
			UPDATE incoming SET remarks = $1, eta = $2 WHERE incomingid = $3
		`, in.Remarks, in.ETA, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update shipment: %w", err)
		}
	} else {
		if err := validateShipment(in); err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `
			UPDATE incoming
			SET productid = $1, remarks = $2, eta = $3, deliverystatus = $4
			WHERE incomingid = $5
		`, in.ProductID, in.Remarks, in.ETA, in.Status, id)
		if err != nil {
			return nil, fmt.Errorf("failed to update shipment: %w", err)
		}

		if _, err := tx.Exec(ctx, "DELETE FROM incoming_details WHERE incomingid = $1", id); err != nil {
			return nil, fmt.Errorf("failed to clear shipment lines: %w", err)
		}
		if err := insertShipmentLines(ctx, tx, id, in.Lines); err != nil {
			return nil, err
		}

		// Transition into Received from a non-received status: fan out
		// exactly once, all lines or none.
		if in.Status == StatusReceived {
			if err := s.fanOut(ctx, tx, id, in.Lines); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit shipment update: %w", err)
	}
	return s.GetShipment(ctx, id)
}

func (s *intakeService) fanOut(ctx context.Context, tx pgx.Tx, shipmentID int, lines []ShipmentLineInput) error {
	for _, line := range lines {
		if err := s.stock.AddStockTx(ctx, tx, shipmentID, line.OptionID, line.IncomingQty); err != nil {
			return fmt.Errorf("ledger fan-out for shipment %d: %w", shipmentID, err)
		}
	}
	return nil
}

func insertShipmentLines(ctx context.Context, tx pgx.Tx, shipmentID int, lines []ShipmentLineInput) error {
	for _, line := range lines {
		_, err := tx.Exec(ctx, `
			INSERT INTO incoming_details (incomingid, optionid, suppliercost, incomingqty, landedcost, grossprice)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, shipmentID, line.OptionID, line.SupplierCost, line.IncomingQty, line.LandedCost, line.GrossPrice)
		if err != nil {
			return fmt.Errorf("failed to insert shipment line for option %d: %w", line.OptionID, err)
		}
	}
	return nil
}

const shipmentQuery = `
	SELECT i.incomingid, i.productid, p.productname, b.brandname,
	       i.remarks, i.eta, i.deliverystatus, i.created_by, i.created_at
	FROM incoming i
	JOIN products p ON p.productid = i.productid
	JOIN brands b   ON b.brandid = p.brandid
`

func (s *intakeService) GetShipment(ctx context.Context, id int) (*Shipment, error) {
	var sh Shipment
	err := s.pool.QueryRow(ctx, shipmentQuery+" WHERE i.incomingid = $1", id).Scan(
		&sh.ID, &sh.ProductID, &sh.ProductName, &sh.BrandName,
		&sh.Remarks, &sh.ETA, &sh.Status, &sh.CreatedBy, &sh.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("shipment %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to fetch shipment: %w", err)
	}

	sh.Lines, err = s.shipmentLines(ctx, sh.ID, sh.ProductID)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (s *intakeService) ListShipments(ctx context.Context, status *DeliveryStatus) ([]Shipment, error) {
	query := shipmentQuery
	args := []any{}
	if status != nil {
		query += " WHERE i.deliverystatus = $1"
		args = append(args, *status)
	}
	query += " ORDER BY i.created_at DESC, i.incomingid DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipments: %w", err)
	}
	defer rows.Close()

	var shipments []Shipment
	for rows.Next() {
		var sh Shipment
		if err := rows.Scan(
			&sh.ID, &sh.ProductID, &sh.ProductName, &sh.BrandName,
			&sh.Remarks, &sh.ETA, &sh.Status, &sh.CreatedBy, &sh.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shipment: %w", err)
		}
		shipments = append(shipments, sh)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range shipments {
		shipments[i].Lines, err = s.shipmentLines(ctx, shipments[i].ID, shipments[i].ProductID)
		if err != nil {
			return nil, err
		}
	}
	return shipments, nil
}

func (s *intakeService) shipmentLines(ctx context.Context, shipmentID, productID int) ([]ShipmentLine, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT d.optionid, o.optionname, COALESCE(po.sku, ''),
		       d.suppliercost, d.incomingqty, d.landedcost, d.grossprice
		FROM incoming_details d
		JOIN options o ON o.optionid = d.optionid
		LEFT JOIN product_options po ON po.productid = $2 AND po.optionid = d.optionid
		WHERE d.incomingid = $1
		ORDER BY o.optionname
	`, shipmentID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shipment lines: %w", err)
	}
	defer rows.Close()

	var lines []ShipmentLine
	for rows.Next() {
		var l ShipmentLine
		if err := rows.Scan(
			&l.OptionID, &l.OptionName, &l.SKU,
			&l.SupplierCost, &l.IncomingQty, &l.LandedCost, &l.GrossPrice,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shipment line: %w", err)
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}
