package http

import (
	"net/http"

	"carlink-backend/internal/geo"
)

type GeocodeHandler struct {
	client *geo.Client
}

func NewGeocodeHandler(client *geo.Client) *GeocodeHandler {
	return &GeocodeHandler{client: client}
}

// Reverse resolves coordinates to a display address.
// GET /geocode/reverse?lat=10.762622&lng=106.660172
func (h *GeocodeHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	lat, ok := parseFloat(q.Get("lat"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lat"})
		return
	}
	lng, ok := parseFloat(q.Get("lng"))
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid lng"})
		return
	}

	loc := h.client.Reverse(r.Context(), lat, lng)
	writeJSON(w, http.StatusOK, loc)
}
