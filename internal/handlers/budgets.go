package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lojaviva/pos-api/internal/platform/httpx"
	"github.com/lojaviva/pos-api/internal/services"
)

// BudgetHandlers exposes the budget collection and the register-scoped
// save and load endpoints.
type BudgetHandlers struct {
	budgets services.BudgetService
}

// NewBudgetHandlers constructs handlers delegating to the budget service.
func NewBudgetHandlers(budgets services.BudgetService) *BudgetHandlers {
	return &BudgetHandlers{budgets: budgets}
}

// Routes wires the /budgets collection endpoints.
func (h *BudgetHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listBudgets)
	r.Delete("/", h.clearBudgets)
	r.Get("/{budgetID}", h.getBudget)
	r.Delete("/{budgetID}", h.removeBudget)
}

// RegisterRoutes wires the save and load endpoints under a register route.
func (h *BudgetHandlers) RegisterRoutes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/budgets", h.saveBudget)
	r.Post("/budgets/{budgetID}/load", h.loadBudget)
}

type budgetResponse struct {
	Budget budgetPayload `json:"budget"`
}

type budgetListResponse struct {
	Budgets []budgetPayload `json:"budgets"`
}

func (h *BudgetHandlers) listBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	budgets, err := h.budgets.ListBudgets(ctx)
	if err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}

	payload := make([]budgetPayload, 0, len(budgets))
	for _, b := range budgets {
		payload = append(payload, buildBudgetPayload(b))
	}
	writeJSONResponse(w, http.StatusOK, budgetListResponse{Budgets: payload})
}

func (h *BudgetHandlers) getBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	budget, err := h.budgets.GetBudget(ctx, chi.URLParam(r, "budgetID"))
	if err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, budgetResponse{Budget: buildBudgetPayload(budget)})
}

func (h *BudgetHandlers) saveBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	budget, err := h.budgets.SaveBudget(ctx, services.SaveBudgetCommand{RegisterID: registerIDParam(r)})
	if err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, budgetResponse{Budget: buildBudgetPayload(budget)})
}

func (h *BudgetHandlers) loadBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cart, err := h.budgets.LoadBudget(ctx, services.LoadBudgetCommand{
		RegisterID: registerIDParam(r),
		BudgetID:   chi.URLParam(r, "budgetID"),
	})
	if err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, cartResponse{Cart: buildCartPayload(cart)})
}

func (h *BudgetHandlers) removeBudget(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.budgets.RemoveBudget(ctx, chi.URLParam(r, "budgetID")); err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandlers) clearBudgets(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.budgets.ClearBudgets(ctx); err != nil {
		h.writeBudgetError(ctx, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BudgetHandlers) writeBudgetError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrBudgetEmptyCart):
		httpx.WriteError(ctx, w, httpx.NewError("budget_empty_cart", "cannot save a budget from an empty cart", http.StatusUnprocessableEntity))
	case errors.Is(err, services.ErrBudgetInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrBudgetNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("budget_not_found", "budget not found", http.StatusNotFound))
	case errors.Is(err, services.ErrBudgetUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("budget_service_unavailable", "budget service is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("budget_error", "failed to process budget request", http.StatusInternalServerError))
	}
}
