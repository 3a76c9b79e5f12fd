package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/platform/httpx"
	"github.com/lojaviva/pos-api/internal/services"
)

const maxCustomerBodySize = 32 * 1024

// CustomerHandlers exposes the customer directory and the per-register
// customer selection endpoints.
type CustomerHandlers struct {
	customers services.CustomerService
}

// NewCustomerHandlers constructs handlers delegating to the customer service.
func NewCustomerHandlers(customers services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customers: customers}
}

// Routes wires the /customers directory endpoints.
func (h *CustomerHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listCustomers)
	r.Post("/", h.createCustomer)
	r.Get("/{customerID}", h.getCustomer)
}

// SelectionRoutes wires the customer selection endpoints under a register route.
func (h *CustomerHandlers) SelectionRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Route("/customer", func(sel chi.Router) {
		sel.Get("/", h.selectedCustomer)
		sel.Put("/", h.selectCustomer)
		sel.Delete("/", h.clearSelection)
	})
}

type createCustomerRequest struct {
	Name    string          `json:"name"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	TaxID   string          `json:"taxId"`
	Type    string          `json:"type"`
	Address *addressPayload `json:"address"`
}

type selectCustomerRequest struct {
	CustomerID string `json:"customerId"`
}

type customerResponse struct {
	Customer customerPayload `json:"customer"`
}

type customerListResponse struct {
	Customers []customerPayload `json:"customers"`
}

type selectionResponse struct {
	Customer *customerPayload `json:"customer"`
}

func (h *CustomerHandlers) listCustomers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		customers []services.Customer
		err       error
	)
	switch {
	case strings.TrimSpace(r.URL.Query().Get("q")) != "":
		customers, err = h.customers.SearchCustomers(ctx, r.URL.Query().Get("q"))
	case strings.TrimSpace(r.URL.Query().Get("type")) != "":
		customers, err = h.customers.ListCustomersByType(ctx, domain.CustomerType(strings.TrimSpace(r.URL.Query().Get("type"))))
	default:
		customers, err = h.customers.ListCustomers(ctx)
	}
	if err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, customerListResponse{Customers: buildCustomerList(customers)})
}

func (h *CustomerHandlers) getCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customer, err := h.customers.GetCustomer(ctx, chi.URLParam(r, "customerID"))
	if err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, customerResponse{Customer: buildCustomerPayload(customer)})
}

func (h *CustomerHandlers) createCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCustomerBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req createCustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	cmd := services.CreateCustomerCommand{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		TaxID: req.TaxID,
		Type:  domain.CustomerType(strings.TrimSpace(req.Type)),
	}
	if req.Address != nil {
		cmd.Address = &domain.Address{
			Street:       req.Address.Street,
			Number:       req.Address.Number,
			Complement:   req.Address.Complement,
			Neighborhood: req.Address.Neighborhood,
			City:         req.Address.City,
			State:        req.Address.State,
			ZipCode:      req.Address.ZipCode,
		}
	}

	customer, err := h.customers.CreateCustomer(ctx, cmd)
	if err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, customerResponse{Customer: buildCustomerPayload(customer)})
}

func (h *CustomerHandlers) selectedCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	customer, err := h.customers.SelectedCustomer(ctx, registerIDParam(r))
	if err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}

	resp := selectionResponse{}
	if customer != nil {
		payload := buildCustomerPayload(*customer)
		resp.Customer = &payload
	}
	writeJSONResponse(w, http.StatusOK, resp)
}

func (h *CustomerHandlers) selectCustomer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxCustomerBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req selectCustomerRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	customer, err := h.customers.SelectCustomer(ctx, registerIDParam(r), req.CustomerID)
	if err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, customerResponse{Customer: buildCustomerPayload(customer)})
}

func (h *CustomerHandlers) clearSelection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.customers.ClearSelection(ctx, registerIDParam(r)); err != nil {
		h.writeCustomerError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CustomerHandlers) writeCustomerError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCustomerInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCustomerNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("customer_not_found", "customer not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCustomerConflict):
		httpx.WriteError(ctx, w, httpx.NewError("customer_conflict", "customer already exists", http.StatusConflict))
	case errors.Is(err, services.ErrCustomerUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("customer_service_unavailable", "customer service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("customer_error", "failed to process customer request", http.StatusInternalServerError))
	}
}
