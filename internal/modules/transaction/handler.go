package transaction

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/konnco/store-backend/internal/modules/auth"
	"github.com/konnco/store-backend/internal/modules/payment"
)

// Handler exposes checkout and transaction lifecycle endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *auth.Middleware) {
	r.Route("/api/v1/transactions", func(r chi.Router) {
		// Provider webhook. The payload is not trusted: the claimed status
		// is confirmed against the provider's status API before any
		// transition, so a forged POST cannot approve a transaction.
		r.Post("/notification", h.notification)

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCustomer)
			r.Post("/", h.checkout)
			r.Get("/", h.list)
			r.Get("/{orderID}", h.get)
			r.Post("/{orderID}/sync", h.sync)
		})

		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Post("/{orderID}/approve", h.approve)
			r.Post("/{orderID}/cancel", h.cancel)
		})
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	result, err := h.service.Checkout(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, result)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	txns, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, txns)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	t, err := h.service.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		respondError(w, err)
		return
	}
	if t.CustomerID != customerID {
		respond(w, http.StatusNotFound, map[string]string{"error": ErrNotFound.Error()})
		return
	}
	respond(w, http.StatusOK, t)
}

func (h *Handler) sync(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	orderID := chi.URLParam(r, "orderID")
	t, err := h.service.Get(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	if t.CustomerID != customerID {
		respond(w, http.StatusNotFound, map[string]string{"error": ErrNotFound.Error()})
		return
	}
	t, err = h.service.SyncStatus(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, t)
}

type notificationPayload struct {
	OrderID           string `json:"order_id"`
	TransactionStatus string `json:"transaction_status"`
}

func (h *Handler) notification(w http.ResponseWriter, r *http.Request) {
	var payload notificationPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if payload.OrderID == "" {
		respond(w, http.StatusBadRequest, map[string]string{"error": "order_id is required"})
		return
	}
	t, err := h.service.HandleNotification(r.Context(), payload.OrderID, payload.TransactionStatus)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": string(t.Status)})
}

func (h *Handler) approve(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, StatusApproved)
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.resolve(w, r, StatusCancelled)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request, outcome Status) {
	t, err := h.service.Resolve(r.Context(), chi.URLParam(r, "orderID"), outcome)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, t)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrEmptyCart):
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, ErrInvalidState):
		respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, payment.ErrUpstream):
		respond(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
