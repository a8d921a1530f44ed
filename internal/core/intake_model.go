package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentLine is one option's costs and quantity within a shipment.
type ShipmentLine struct {
	OptionID     int             `json:"optionid"`
	OptionName   string          `json:"optionname"`
	SKU          string          `json:"sku"`
	SupplierCost decimal.Decimal `json:"suppliercost"`
	IncomingQty  int             `json:"incomingqty"`
	LandedCost   decimal.Decimal `json:"landedcost"`
	GrossPrice   decimal.Decimal `json:"grossprice"`
}

// Shipment is an incoming delivery of one product across several options.
type Shipment struct {
	ID          int            `json:"incomingid"`
	ProductID   int            `json:"productid"`
	ProductName string         `json:"productname"`
	BrandName   string         `json:"brandname"`
	Remarks     string         `json:"remarks"`
	ETA         *time.Time     `json:"eta,omitempty"`
	Status      DeliveryStatus `json:"deliverystatus"`
	CreatedBy   *int           `json:"created_by,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	Lines       []ShipmentLine `json:"lines"`
}

// ShipmentInput carries the writable fields of a shipment.
type ShipmentInput struct {
	ProductID int
	Remarks   string
	ETA       *time.Time
	Status    DeliveryStatus
	CreatedBy *int
	Lines     []ShipmentLineInput
}

type ShipmentLineInput struct {
	OptionID     int
	SupplierCost decimal.Decimal
	IncomingQty  int
	LandedCost   decimal.Decimal
	GrossPrice   decimal.Decimal
}
