package web

import (
	"net/http"

	"stockroom/internal/app"

	"github.com/shopspring/decimal"
)

// listShipments handles GET /api/incoming?status=.
func (h *Handler) listShipments(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListShipments(r.Context(), statusQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Shipments)
}

// getShipment handles GET /api/incoming/{id}.
func (h *Handler) getShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid shipment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetShipment(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Shipment)
}

type shipmentBody struct {
	ProductID int    `json:"productid"`
	Remarks   string `json:"remarks"`
	ETA       string `json:"eta"`
	Status    string `json:"deliverystatus"`
	CreatedBy *int   `json:"created_by"`
	Lines     []struct {
		OptionID     int             `json:"optionid"`
		SupplierCost decimal.Decimal `json:"suppliercost"`
		IncomingQty  int             `json:"incomingqty"`
		LandedCost   decimal.Decimal `json:"landedcost"`
		GrossPrice   decimal.Decimal `json:"grossprice"`
	} `json:"lines"`
}

func (b shipmentBody) toRequest() app.ShipmentRequest {
	req := app.ShipmentRequest{
		ProductID: b.ProductID,
		Remarks:   b.Remarks,
		ETA:       b.ETA,
		Status:    b.Status,
		CreatedBy: b.CreatedBy,
	}
	if req.Status == "" {
		req.Status = "Pending"
	}
	for _, l := range b.Lines {
		req.Lines = append(req.Lines, app.ShipmentLineRequest{
			OptionID:     l.OptionID,
			SupplierCost: l.SupplierCost,
			IncomingQty:  l.IncomingQty,
			LandedCost:   l.LandedCost,
			GrossPrice:   l.GrossPrice,
		})
	}
	return req
}

// createShipment handles POST /api/incoming.
// Body: { productid, remarks?, eta?, deliverystatus?, created_by?,
//         lines: [{optionid, suppliercost, incomingqty, landedcost, grossprice}] }
func (h *Handler) createShipment(w http.ResponseWriter, r *http.Request) {
	var body shipmentBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateShipment(r.Context(), body.toRequest())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Shipment)
}

// updateShipment handles PUT /api/incoming/{id}.
func (h *Handler) updateShipment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid shipment id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body shipmentBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateShipment(r.Context(), id, body.toRequest())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Shipment)
}

// statusQuery extracts the optional ?status= filter.
func statusQuery(r *http.Request) *string {
	status := r.URL.Query().Get("status")
	if status == "" {
		return nil
	}
	return &status
}
