package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"carlink-backend/internal/security"
)

// NewRouter wires all handlers onto a mux router. Everything under the API
// prefix except auth and health requires a valid access token.
func NewRouter(
	tm security.TokenManager,
	authH *AuthHandler,
	rentalH *RentalHandler,
	paymentH *PaymentHandler,
	driverH *DriverHandler,
	geocodeH *GeocodeHandler,
) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	// Public auth surface.
	api.HandleFunc("/auth/signup", authH.Signup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authH.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", authH.Refresh).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", authH.Logout).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(tm))

	// Quotes and rentals.
	protected.HandleFunc("/cars/{id}/quote", rentalH.Quote).Methods(http.MethodGet)
	protected.HandleFunc("/rentals", rentalH.CreateBooking).Methods(http.MethodPost)
	protected.HandleFunc("/rentals", rentalH.List).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}", rentalH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/rentals/{id}/confirm", rentalH.Confirm).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/start", rentalH.Start).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/complete", rentalH.Complete).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/cancel", rentalH.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/driver", rentalH.AssignDriver).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/driver/accept", rentalH.AcceptDriverAssignment).Methods(http.MethodPost)
	protected.HandleFunc("/rentals/{id}/payments", paymentH.ListByRental).Methods(http.MethodGet)

	// Payment ledger.
	protected.HandleFunc("/payments", paymentH.Create).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}", paymentH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}/complete", paymentH.Complete).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}/fail", paymentH.Fail).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}/cancel", paymentH.Cancel).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}/confirm-receipt", paymentH.ConfirmReceipt).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}/refund", paymentH.Refund).Methods(http.MethodPost)
	protected.HandleFunc("/payments/{id}/distributions", paymentH.ListDistributions).Methods(http.MethodGet)
	protected.HandleFunc("/payments/{id}/distributions", paymentH.CreateDistributions).Methods(http.MethodPost)
	protected.HandleFunc("/distributions/{id}/complete", paymentH.MarkDistributionCompleted).Methods(http.MethodPost)
	protected.HandleFunc("/distributions/{id}/fail", paymentH.MarkDistributionFailed).Methods(http.MethodPost)
	protected.HandleFunc("/owners/revenue", paymentH.OwnerRevenue).Methods(http.MethodGet)

	// Driver roster.
	protected.HandleFunc("/driver-assignments", driverH.CreateAssignment).Methods(http.MethodPost)
	protected.HandleFunc("/driver-assignments", driverH.ListAssignments).Methods(http.MethodGet)
	protected.HandleFunc("/drivers/{id}/fee-estimate", driverH.EstimateFee).Methods(http.MethodGet)

	// Geocoding proxy.
	protected.HandleFunc("/geocode/reverse", geocodeH.Reverse).Methods(http.MethodGet)

	return r
}
