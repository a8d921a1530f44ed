package web

import "net/http"

// dashboard handles GET /api/dashboard?as_of=YYYY-MM-DD.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboard(r.Context(), r.URL.Query().Get("as_of"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Summary)
}

// getUser handles GET /api/users/{id}.
func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := urlID(r)
	if !ok {
		writeError(w, r, "invalid user id", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.User)
}
