package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"stockroom/internal/app"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	log    *zap.Logger
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, log *zap.Logger, allowedOrigins string) http.Handler {
	h := &Handler{svc: svc, log: log}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// 1 MB body limit on every API endpoint to prevent unbounded request abuse.
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		// ── Catalog ───────────────────────────────────────────────────────────
		r.Get("/api/brands", h.listBrands)
		r.Post("/api/brands", h.createBrand)
		r.Put("/api/brands/{id}", h.updateBrand)
		r.Get("/api/brands/check", h.checkBrand)

		r.Get("/api/options", h.listOptions)
		r.Post("/api/options", h.createOption)
		r.Put("/api/options/{id}", h.updateOption)
		r.Get("/api/options/check", h.checkOption)

		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Get("/api/products/{id}", h.getProduct)
		r.Put("/api/products/{id}", h.updateProduct)

		// ── Shipment intake ───────────────────────────────────────────────────
		r.Get("/api/incoming", h.listShipments)
		r.Post("/api/incoming", h.createShipment)
		r.Get("/api/incoming/{id}", h.getShipment)
		r.Put("/api/incoming/{id}", h.updateShipment)

		// ── Inventory and dispatch ────────────────────────────────────────────
		r.Get("/api/inventory", h.stockLevels)
		r.Post("/api/dispatch", h.submitBasket)
		r.Get("/api/outgoing", h.listDispatches)
		r.Get("/api/outgoing/{id}", h.getDispatch)
		r.Post("/api/outgoing/{id}/status", h.updateDispatchStatus)

		// ── Reporting and identity ────────────────────────────────────────────
		r.Get("/api/dashboard", h.dashboard)
		r.Get("/api/users/{id}", h.getUser)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts and parses the {id} URL parameter.
func urlID(r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	return id, err == nil && id > 0
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
