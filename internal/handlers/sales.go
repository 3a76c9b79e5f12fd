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

const maxSaleBodySize = 16 * 1024

// SaleHandlers exposes sale finalization and history endpoints.
type SaleHandlers struct {
	sales services.SaleService
}

// NewSaleHandlers constructs handlers delegating to the sale service.
func NewSaleHandlers(sales services.SaleService) *SaleHandlers {
	return &SaleHandlers{sales: sales}
}

// Routes wires the /sales history endpoints.
func (h *SaleHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listSales)
}

// RegisterRoutes wires the finalize endpoint under a register route.
func (h *SaleHandlers) RegisterRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/sale", h.finalizeSale)
}

type finalizeSaleRequest struct {
	PaymentMethod string `json:"paymentMethod"`
	Notes         string `json:"notes"`
}

type saleResponse struct {
	Sale salePayload `json:"sale"`
}

type saleListResponse struct {
	Sales []salePayload `json:"sales"`
}

func (h *SaleHandlers) finalizeSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := readLimitedBody(r, maxSaleBodySize)
	if err != nil {
		writeBodyError(ctx, w, err)
		return
	}

	var req finalizeSaleRequest
	if err := json.Unmarshal(body, &req); err != nil {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "request body must be valid JSON", http.StatusBadRequest))
		return
	}

	sale, err := h.sales.FinalizeSale(ctx, services.FinalizeSaleCommand{
		RegisterID:    registerIDParam(r),
		PaymentMethod: domain.PaymentMethod(strings.TrimSpace(req.PaymentMethod)),
		Notes:         req.Notes,
	})
	if err != nil {
		h.writeSaleError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, saleResponse{Sale: buildSalePayload(sale)})
}

func (h *SaleHandlers) listSales(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sales, err := h.sales.ListSales(ctx)
	if err != nil {
		h.writeSaleError(ctx, w, err)
		return
	}

	payload := make([]salePayload, 0, len(sales))
	for _, s := range sales {
		payload = append(payload, buildSalePayload(s))
	}
	writeJSONResponse(w, http.StatusOK, saleListResponse{Sales: payload})
}

func (h *SaleHandlers) writeSaleError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrSaleEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("sale_empty_cart", "add products to the cart before finalizing", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrSaleNoCustomer):
		httpx.WriteError(ctx, w, httpx.NewError("sale_no_customer", "select a customer before finalizing", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrSaleZeroTotal):
		httpx.WriteError(ctx, w, httpx.NewError("sale_zero_total", "sale total must be greater than zero", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrSaleInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrSaleUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("sale_service_unavailable", "sale service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("sale_error", "failed to finalize sale", http.StatusInternalServerError))
	}
}
