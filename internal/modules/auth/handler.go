package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/konnco/store-backend/internal/modules/customer"
)

// Handler exposes registration and login endpoints.
type Handler struct {
	service   Service
	customers customer.Service
}

func NewHandler(service Service, customers customer.Service) *Handler {
	return &Handler{service: service, customers: customers}
}

func (h *Handler) RegisterRoutes(r *chi.Mux, mw *Middleware) {
	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/login/admin", h.adminLogin)
	})
	r.Route("/api/v1/profile", func(r chi.Router) {
		r.Use(mw.RequireCustomer)
		r.Get("/", h.profile)
	})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	customerID, _ := CustomerID(r.Context())
	c, err := h.customers.Get(r.Context(), customerID)
	if err != nil {
		if errors.Is(err, customer.ErrNotFound) {
			respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req customer.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		respond(w, http.StatusBadRequest, map[string]interface{}{"errors": errs})
		return
	}
	c, err := h.customers.Register(r.Context(), req)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, map[string]string{
		"id":       c.ID.String(),
		"username": c.Username,
		"email":    c.Email,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	identity := req.Username
	if identity == "" {
		identity = req.Email
	}
	token, err := h.service.CustomerLogin(r.Context(), identity, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"access_token": token})
}

func (h *Handler) adminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	token, err := h.service.AdminLogin(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			respond(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"access_token": token})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
