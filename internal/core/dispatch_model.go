package core

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BasketLine is one requested dispatch: take quantity units out of a
// specific inventory row at the given selling price.
type BasketLine struct {
	InventoryID int             `json:"inventoryid"`
	Quantity    int             `json:"quantity"`
	SoldPrice   decimal.Decimal `json:"soldprice"`
}

// Dispatch is one outgoing row joined with its catalog context.
type Dispatch struct {
	ID          int             `json:"outgoingid"`
	InventoryID int             `json:"inventoryid"`
	OptionID    int             `json:"optionid"`
	OptionName  string          `json:"optionname"`
	ProductName string          `json:"productname"`
	BrandName   string          `json:"brandname"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"dispatchquantity"`
	SoldPrice   decimal.Decimal `json:"soldprice"`
	Status      DeliveryStatus  `json:"deliverystatus"`
	BatchRef    uuid.UUID       `json:"batchref"`
	CreatedBy   *int            `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	ReceivedAt  *time.Time      `json:"received_at,omitempty"`
}

// BasketResult is what a submitted basket produced: the created dispatches
// and the refreshed levels of every inventory row they drew from.
type BasketResult struct {
	BatchRef   uuid.UUID    `json:"batchref"`
	Dispatches []Dispatch   `json:"dispatches"`
	Stock      []StockLevel `json:"stock"`
}
