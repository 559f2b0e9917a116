package http

import (
	"context"
	"net/http"
	"time"

	"carlink-backend/internal/domain"
	"carlink-backend/internal/service"
)

type PaymentHandler struct {
	paymentSvc      service.PaymentService
	distributionSvc service.DistributionService
}

func NewPaymentHandler(paymentSvc service.PaymentService, distributionSvc service.DistributionService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc, distributionSvc: distributionSvc}
}

type createPaymentRequest struct {
	RentalID int32  `json:"rental_id"`
	Amount   int64  `json:"amount"`
	Method   string `json:"method"`
	Type     string `json:"type"`
	Notes    string `json:"notes"`
}

func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.paymentSvc.Create(r.Context(), req.RentalID, req.Amount,
		domain.PaymentMethod(req.Method), domain.PaymentType(req.Type), req.Notes)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PaymentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.paymentSvc.Complete)
}

func (h *PaymentHandler) Fail(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.paymentSvc.Fail)
}

func (h *PaymentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.paymentSvc.Cancel)
}

func (h *PaymentHandler) ConfirmReceipt(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.paymentSvc.ConfirmReceipt)
}

type refundRequest struct {
	Amount int64  `json:"amount"`
	Reason string `json:"reason"`
}

func (h *PaymentHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	var req refundRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	p, err := h.paymentSvc.Refund(r.Context(), id, req.Amount, req.Reason)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	p, err := h.paymentSvc.GetPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ListByRental returns the rental's payment ledger together with the
// cumulative completed amount, so callers can see the remaining balance
// without re-deriving it.
func (h *PaymentHandler) ListByRental(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid rental id"})
		return
	}
	payments, err := h.paymentSvc.ListByRental(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	paid, err := h.paymentSvc.AmountPaid(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"payments": payments, "amount_paid": paid})
}

// OwnerRevenue reports completed revenue for the authenticated owner over
// a date range. Defaults to the current month when no range is given.
func (h *PaymentHandler) OwnerRevenue(w http.ResponseWriter, r *http.Request) {
	claims := ClaimsFromContext(r.Context())
	q := r.URL.Query()

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now
	if raw := q.Get("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid from time, expected RFC3339"})
			return
		}
		from = t
	}
	if raw := q.Get("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid to time, expected RFC3339"})
			return
		}
		to = t
	}

	total, err := h.paymentSvc.OwnerRevenueBetween(r.Context(), claims.UserID, from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"owner_revenue": total, "from": from, "to": to})
}

func (h *PaymentHandler) ListDistributions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	dists, err := h.distributionSvc.ListByPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"distributions": dists})
}

func (h *PaymentHandler) CreateDistributions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	dists, err := h.distributionSvc.CreateForPayment(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"distributions": dists})
}

type markCompletedRequest struct {
	TransactionRef string `json:"transaction_ref"`
}

func (h *PaymentHandler) MarkDistributionCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid distribution id"})
		return
	}
	var req markCompletedRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.distributionSvc.MarkCompleted(r.Context(), id, req.TransactionRef); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.DistributionStatusCompleted)})
}

type markFailedRequest struct {
	Error string `json:"error"`
}

func (h *PaymentHandler) MarkDistributionFailed(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid distribution id"})
		return
	}
	var req markFailedRequest
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.distributionSvc.MarkFailed(r.Context(), id, req.Error); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": string(domain.DistributionStatusFailed)})
}

func (h *PaymentHandler) transition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, id int32) (*domain.Payment, error)) {
	id, ok := pathID(r, "id")
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid payment id"})
		return
	}
	p, err := fn(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
