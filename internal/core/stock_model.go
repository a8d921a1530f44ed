package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel is one inventory ledger row joined with the shipment and
// catalog data the inventory screen shows.
type StockLevel struct {
	InventoryID int             `json:"inventoryid"`
	IncomingID  int             `json:"incomingid"`
	ProductID   int             `json:"productid"`
	ProductName string          `json:"productname"`
	BrandName   string          `json:"brandname"`
	OptionID    int             `json:"optionid"`
	OptionName  string          `json:"optionname"`
	SKU         string          `json:"sku"`
	OnHand      int             `json:"onhandqty"`
	Available   int             `json:"availableqty"`
	LandedCost  decimal.Decimal `json:"landedcost"`
	GrossPrice  decimal.Decimal `json:"grossprice"`
	CreatedAt   time.Time       `json:"created_at"`
}
