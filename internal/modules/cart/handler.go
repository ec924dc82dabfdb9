package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/konnco/store-backend/internal/modules/auth"
	"github.com/konnco/store-backend/internal/modules/inventory"
)

// Handler exposes cart HTTP endpoints. Every route requires a customer
// token.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *auth.Middleware) {
	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(mw.RequireCustomer)
		r.Get("/", h.list)
		r.Post("/", h.add)
		r.Put("/{productID}", h.updateQty)
		r.Delete("/{productID}", h.remove)
	})
}

type lineRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	views, err := h.service.List(r.Context(), customerID)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	var total int64
	for _, v := range views {
		total += v.Subtotal
	}
	respond(w, http.StatusOK, map[string]interface{}{"items": views, "total": total})
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	var req lineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.Add(r.Context(), customerID, req.ProductID, req.Qty); err != nil {
		respondCartError(w, err)
		return
	}
	respond(w, http.StatusCreated, map[string]string{"status": "added to cart"})
}

func (h *Handler) updateQty(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return
	}
	var body struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := h.service.UpdateQty(r.Context(), customerID, productID, body.Qty); err != nil {
		respondCartError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"status": "cart updated"})
}

func (h *Handler) remove(w http.ResponseWriter, r *http.Request) {
	customerID, _ := auth.CustomerID(r.Context())
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "invalid ID"})
		return
	}
	if err := h.service.Remove(r.Context(), customerID, productID); err != nil {
		respondCartError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrQtyTooLow):
		respond(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.Is(err, inventory.ErrOutOfStock):
		respond(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, inventory.ErrProductNotFound), errors.Is(err, ErrNotFound):
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
