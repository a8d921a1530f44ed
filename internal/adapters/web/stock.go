package web

import (
	"net/http"

	"stockroom/internal/app"

	"github.com/shopspring/decimal"
)

// stockLevels handles GET /api/inventory.
func (h *Handler) stockLevels(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetStockLevels(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Levels)
}

// submitBasket handles POST /api/dispatch.
// Body: { created_by?, lines: [{inventoryid, quantity, soldprice}] }
func (h *Handler) submitBasket(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CreatedBy *int `json:"created_by"`
		Lines     []struct {
			InventoryID int             `json:"inventoryid"`
			Quantity    int             `json:"quantity"`
			SoldPrice   decimal.Decimal `json:"soldprice"`
		} `json:"lines"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	req := app.BasketRequest{CreatedBy: body.CreatedBy}
	for _, l := range body.Lines {
		req.Lines = append(req.Lines, app.BasketLineRequest{
			InventoryID: l.InventoryID,
			Quantity:    l.Quantity,
			SoldPrice:   l.SoldPrice,
		})
	}

	result, err := h.svc.SubmitBasket(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Basket)
}

// listDispatches handles GET /api/outgoing?status=.
func (h *Handler) listDispatches(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListDispatches(r.Context(), statusQuery(r))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Dispatches)
}

// getDispatch handles GET /api/outgoing/{id}.
func (h *Handler) getDispatch(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid dispatch id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetDispatch(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Dispatch)
}

// updateDispatchStatus handles POST /api/outgoing/{id}/status.
// Body: { deliverystatus }
func (h *Handler) updateDispatchStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid dispatch id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body struct {
		Status string `json:"deliverystatus"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateDispatchStatus(r.Context(), id, body.Status)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Dispatch)
}
