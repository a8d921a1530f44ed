package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PeriodFigure compares one dashboard number between the current and the
// previous calendar month. PercentChange is nil when the previous month
// was zero (no meaningful baseline).
type PeriodFigure struct {
	Current       decimal.Decimal  `json:"current"`
	Previous      decimal.Decimal  `json:"previous"`
	PercentChange *decimal.Decimal `json:"percent_change,omitempty"`
}

type RecentSale struct {
	OutgoingID  int             `json:"outgoingid"`
	ProductName string          `json:"productname"`
	OptionName  string          `json:"optionname"`
	Quantity    int             `json:"dispatchquantity"`
	SoldPrice   decimal.Decimal `json:"soldprice"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DashboardSummary is recomputed from the live tables on every call.
//
// Income counts only Received dispatches; outcome counts every shipment's
// landed cost regardless of delivery status. That asymmetry is the
// established reading of these figures and is kept intentionally.
type DashboardSummary struct {
	AsOf           time.Time       `json:"as_of"`
	Income         PeriodFigure    `json:"income"`
	Outcome        PeriodFigure    `json:"outcome"`
	Profit         PeriodFigure    `json:"profit"`
	UnitsSold      int             `json:"units_sold"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	RecentSales    []RecentSale    `json:"recent_sales"`
}

type ReportingService interface {
	GetDashboard(ctx context.Context, asOf time.Time) (*DashboardSummary, error)
}

type reportingService struct {
	pool *pgxpool.Pool
}

func NewReportingService(pool *pgxpool.Pool) ReportingService {
	return &reportingService{pool: pool}
}

func (s *reportingService) GetDashboard(ctx context.Context, asOf time.Time) (*DashboardSummary, error) {
	curStart := time.Date(asOf.Year(), asOf.Month(), 1, 0, 0, 0, 0, asOf.Location())
	curEnd := curStart.AddDate(0, 1, 0)
	prevStart := curStart.AddDate(0, -1, 0)

	curIncome, err := s.incomeBetween(ctx, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	prevIncome, err := s.incomeBetween(ctx, prevStart, curStart)
	if err != nil {
		return nil, err
	}
	curOutcome, err := s.outcomeBetween(ctx, curStart, curEnd)
	if err != nil {
		return nil, err
	}
	prevOutcome, err := s.outcomeBetween(ctx, prevStart, curStart)
	if err != nil {
		return nil, err
	}

	summary := &DashboardSummary{
		AsOf:    asOf,
		Income:  periodFigure(curIncome, prevIncome),
		Outcome: periodFigure(curOutcome, prevOutcome),
		Profit:  periodFigure(curIncome.Sub(curOutcome), prevIncome.Sub(prevOutcome)),
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(dispatchquantity), 0)
		FROM outgoing
		WHERE deliverystatus = 'Received' AND created_at >= $1 AND created_at < $2
	`, curStart, curEnd).Scan(&summary.UnitsSold)
	if err != nil {
		return nil, fmt.Errorf("failed to query units sold: %w", err)
	}

	err = s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(inv.onhandqty * d.landedcost), 0)
		FROM inventory inv
		JOIN incoming_details d ON d.incomingid = inv.incomingid AND d.optionid = inv.optionid
	`).Scan(&summary.InventoryValue)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory value: %w", err)
	}

	summary.RecentSales, err = s.recentSales(ctx, 5)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *reportingService) incomeBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(soldprice * dispatchquantity), 0)
		FROM outgoing
		WHERE deliverystatus = 'Received' AND created_at >= $1 AND created_at < $2
	`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query income: %w", err)
	}
	return total, nil
}

func (s *reportingService) outcomeBetween(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(d.incomingqty * d.landedcost), 0)
		FROM incoming_details d
		JOIN incoming i ON i.incomingid = d.incomingid
		WHERE i.created_at >= $1 AND i.created_at < $2
	`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to query outcome: %w", err)
	}
	return total, nil
}

func (s *reportingService) recentSales(ctx context.Context, limit int) ([]RecentSale, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT out.outgoingid, p.productname, o.optionname,
		       out.dispatchquantity, out.soldprice, out.created_at
		FROM outgoing out
		JOIN inventory inv ON inv.inventoryid = out.inventoryid
		JOIN incoming i    ON i.incomingid = inv.incomingid
		JOIN products p    ON p.productid = i.productid
		JOIN options o     ON o.optionid = out.optionid
		ORDER BY out.created_at DESC, out.outgoingid DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent sales: %w", err)
	}
	defer rows.Close()

	var sales []RecentSale
	for rows.Next() {
		var rs RecentSale
		if err := rows.Scan(
			&rs.OutgoingID, &rs.ProductName, &rs.OptionName,
			&rs.Quantity, &rs.SoldPrice, &rs.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan recent sale: %w", err)
		}
		sales = append(sales, rs)
	}
	return sales, rows.Err()
}

func periodFigure(current, previous decimal.Decimal) PeriodFigure {
	fig := PeriodFigure{Current: current, Previous: previous}
	if !previous.IsZero() {
		change := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Round(2)
		fig.PercentChange = &change
	}
	return fig
}
