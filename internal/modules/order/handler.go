package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/konnco/store-backend/internal/modules/auth"
)

// Handler exposes order history endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *auth.Middleware) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCustomer)
			r.Get("/", h.list)
		})
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireAdmin)
			r.Get("/transaction/{transactionID}", h.listByTransaction)
		})
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	orders, err := h.service.ListByCustomer(r.Context(), customerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listByTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID, err := uuid.Parse(chi.URLParam(r, "transactionID"))
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return
	}
	orders, err := h.service.ListByTransaction(r.Context(), transactionID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
