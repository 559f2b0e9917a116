package http

import (
	"net/http"
	"strconv"
	"time"

	"carlink-backend/internal/service"
)

type DriverHandler struct {
	driverSvc service.DriverService
}

func NewDriverHandler(driverSvc service.DriverService) *DriverHandler {
	return &DriverHandler{driverSvc: driverSvc}
}

type createAssignmentRequest struct {
	DriverID int32 `json:"driver_id"`
	DailyFee int64 `json:"daily_fee"`
}

func (h *DriverHandler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req createAssignmentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	a, err := h.driverSvc.CreateAssignment(r.Context(), claims.UserID, req.DriverID, req.DailyFee)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (h *DriverHandler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())

	assignments, err := h.driverSvc.ListAssignments(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"assignments": assignments})
}

// EstimateFee compares the platform flat-rate driver fee with the owner's
// contracted daily fee for a given period.
// GET /drivers/{id}/fee-estimate?start=...&end=...
func (h *DriverHandler) EstimateFee(w http.ResponseWriter, r *http.Request) {
	driverID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid driver id"})
		return
	}
	q := r.URL.Query()
	start, err := time.Parse(time.RFC3339, q.Get("start"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid start time, expected RFC3339"})
		return
	}
	end, err := time.Parse(time.RFC3339, q.Get("end"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid end time, expected RFC3339"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	est, err := h.driverSvc.EstimateFee(r.Context(), claims.UserID, driverID, start, end)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, est)
}

// parseFloat is shared by query handlers that take coordinates.
func parseFloat(raw string) (float64, bool) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
