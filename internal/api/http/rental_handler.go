package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/service"
)

type RentalHandler struct {
	rentalSvc service.RentalService
}

func NewRentalHandler(rentalSvc service.RentalService) *RentalHandler {
	return &RentalHandler{rentalSvc: rentalSvc}
}

func pathID(r *http.Request, name string) (int32, bool) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// Quote prices a prospective booking without creating anything.
// GET /cars/{id}/quote?start=...&end=...&with_driver=true&delivery_km=12
func (h *RentalHandler) Quote(w http.ResponseWriter, r *http.Request) {
	carID, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid car id"})
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
	withDriver := q.Get("with_driver") == "true"
	deliveryKm, _ := strconv.ParseFloat(q.Get("delivery_km"), 64)

	breakdown, err := h.rentalSvc.GetQuote(r.Context(), carID, start, end, withDriver, deliveryKm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, breakdown)
}

type bookingRequest struct {
	CarID      int32     `json:"car_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	WithDriver bool      `json:"with_driver"`
	DeliveryKm float64   `json:"delivery_km"`
}

func (h *RentalHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req bookingRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	rt, err := h.rentalSvc.CreateBooking(r.Context(), claims.UserID, req.CarID, req.Start, req.End, req.WithDriver, req.DeliveryKm)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (h *RentalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	rt, err := h.rentalSvc.GetRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	q := r.URL.Query()
	status := q.Get("status")
	page := parsePositive(q.Get("page"), 1)
	pageSize := parsePositive(q.Get("page_size"), 20)

	var (
		rentals any
		total   int32
		err     error
	)
	if q.Get("role") == "owner" {
		rentals, total, err = h.rentalSvc.ListByCarOwner(r.Context(), claims.UserID, status, page, pageSize)
	} else {
		rentals, total, err = h.rentalSvc.ListByRenter(r.Context(), claims.UserID, status, page, pageSize)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rentals": rentals, "total": total})
}

func parsePositive(raw string, def int32) int32 {
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || n <= 0 {
		return def
	}
	return int32(n)
}

func (h *RentalHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rentalSvc.Confirm)
}

func (h *RentalHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.rentalSvc.Start)
}

type completeRequest struct {
	DamageFee int64  `json:"damage_fee"`
	Notes     string `json:"notes"`
}

func (h *RentalHandler) Complete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	var req completeRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	rt, err := h.rentalSvc.Complete(r.Context(), id, req.DamageFee, req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

func (h *RentalHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	var req cancelRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	rt, err := h.rentalSvc.Cancel(r.Context(), claims.UserID, id, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

type assignDriverRequest struct {
	DriverID int32 `json:"driver_id"`
}

func (h *RentalHandler) AssignDriver(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	var req assignDriverRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	rt, err := h.rentalSvc.AssignDriver(r.Context(), claims.UserID, id, req.DriverID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) AcceptDriverAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	claims := ClaimsFromContext(r.Context())

	rt, err := h.rentalSvc.AcceptDriverAssignment(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (h *RentalHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int32) (*domain.Rental, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	rt, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}
