package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jcmexdev/ecommerce-api/internal/infra/httpx/middlewares"
)

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	ident, _ := middlewares.IdentityFromContext(r.Context())

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customer, err := h.customers.Create(r.Context(), ident, req.PhoneNumber, req.Address)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "customer created",
		"customer": customer,
	})
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	ident, _ := middlewares.IdentityFromContext(r.Context())

	customer, err := h.customers.Get(r.Context(), ident, chi.URLParam(r, "id"))
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customer)
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.customers.List(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, customers)
}

func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	ident, _ := middlewares.IdentityFromContext(r.Context())

	var req CustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	customer, err := h.customers.Update(r.Context(), ident, chi.URLParam(r, "id"), req.PhoneNumber, req.Address)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":  "customer updated",
		"customer": customer,
	})
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}
