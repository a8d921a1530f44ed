package web

import (
	"net/http"
	"strconv"

	"stockroom/internal/app"
)

// ── Brands ────────────────────────────────────────────────────────────────────

// listBrands handles GET /api/brands.
func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListBrands(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Brands)
}

type brandBody struct {
	Name string `json:"brandname"`
	Code string `json:"brandcode"`
}

// createBrand handles POST /api/brands.
// Body: { brandname, brandcode }
func (h *Handler) createBrand(w http.ResponseWriter, r *http.Request) {
	var body brandBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateBrand(r.Context(), app.BrandRequest{Name: body.Name, Code: body.Code})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Brand)
}

// updateBrand handles PUT /api/brands/{id}.
func (h *Handler) updateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid brand id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body brandBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateBrand(r.Context(), id, app.BrandRequest{Name: body.Name, Code: body.Code})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Brand)
}

// checkBrand handles GET /api/brands/check?name=&code=&exclude=.
// At least one of name or code must be supplied.
func (h *Handler) checkBrand(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	code := r.URL.Query().Get("code")
	if name == "" && code == "" {
		writeError(w, r, "name or code query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	exclude, _ := strconv.Atoi(r.URL.Query().Get("exclude"))

	result, err := h.svc.CheckBrand(r.Context(), name, code, exclude)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		NameTaken *bool `json:"name_taken,omitempty"`
		CodeTaken *bool `json:"code_taken,omitempty"`
	}
	writeJSON(w, response{NameTaken: result.NameTaken, CodeTaken: result.CodeTaken})
}

// ── Options ───────────────────────────────────────────────────────────────────

// listOptions handles GET /api/options.
func (h *Handler) listOptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListOptions(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Options)
}

type optionBody struct {
	Name        string `json:"optionname"`
	Description string `json:"description"`
}

// createOption handles POST /api/options.
// Body: { optionname, description? }
func (h *Handler) createOption(w http.ResponseWriter, r *http.Request) {
	var body optionBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateOption(r.Context(), app.OptionRequest{Name: body.Name, Description: body.Description})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Option)
}

// updateOption handles PUT /api/options/{id}.
func (h *Handler) updateOption(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid option id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body optionBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateOption(r.Context(), id, app.OptionRequest{Name: body.Name, Description: body.Description})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Option)
}

// checkOption handles GET /api/options/check?name=&exclude=.
func (h *Handler) checkOption(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, r, "name query parameter is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	exclude, _ := strconv.Atoi(r.URL.Query().Get("exclude"))

	result, err := h.svc.CheckOption(r.Context(), name, exclude)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	type response struct {
		NameTaken bool `json:"name_taken"`
	}
	writeJSON(w, response{NameTaken: result.NameTaken})
}

// ── Products ──────────────────────────────────────────────────────────────────

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Products)
}

// getProduct handles GET /api/products/{id}.
func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetProduct(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Product)
}

type productBody struct {
	Name        string `json:"productname"`
	BrandID     int    `json:"brandid"`
	Description string `json:"description"`
	Options     []struct {
		OptionID int    `json:"optionid"`
		SKU      string `json:"sku"`
	} `json:"options"`
}

func (b productBody) toRequest() app.ProductRequest {
	req := app.ProductRequest{
		Name:        b.Name,
		BrandID:     b.BrandID,
		Description: b.Description,
	}
	for _, o := range b.Options {
		req.Options = append(req.Options, app.ProductOptionRequest{OptionID: o.OptionID, SKU: o.SKU})
	}
	return req
}

// createProduct handles POST /api/products.
// Body: { productname, brandid, description?, options: [{optionid, sku?}] }
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateProduct(r.Context(), body.toRequest())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, result.Product)
}

// updateProduct handles PUT /api/products/{id}.
func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid product id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	var body productBody
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateProduct(r.Context(), id, body.toRequest())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Product)
}
