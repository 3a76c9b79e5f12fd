package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/platform/httpx"
	"github.com/lojaviva/pos-api/internal/services"
)

// ProductHandlers exposes the read-only product directory.
type ProductHandlers struct {
	catalog services.CatalogService
}

// NewProductHandlers constructs handlers delegating to the catalog service.
func NewProductHandlers(catalog services.CatalogService) *ProductHandlers {
	return &ProductHandlers{catalog: catalog}
}

// Routes wires the /products endpoints.
func (h *ProductHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)
}

type productResponse struct {
	Product productPayload `json:"product"`
}

type productListResponse struct {
	Products []productPayload `json:"products"`
}

func (h *ProductHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		products []services.Product
		err      error
	)
	switch {
	case strings.TrimSpace(r.URL.Query().Get("q")) != "":
		products, err = h.catalog.SearchProducts(ctx, r.URL.Query().Get("q"))
	case strings.TrimSpace(r.URL.Query().Get("category")) != "":
		products, err = h.catalog.ListProductsByCategory(ctx, domain.ProductCategory(strings.TrimSpace(r.URL.Query().Get("category"))))
	default:
		products, err = h.catalog.ListProducts(ctx)
	}
	if err != nil {
		h.writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, productListResponse{Products: buildProductList(products)})
}

func (h *ProductHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	product, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		h.writeCatalogError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, productResponse{Product: buildProductPayload(product)})
}

func (h *ProductHandlers) writeCatalogError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrCatalogInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	case errors.Is(err, services.ErrCatalogNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("product_not_found", "product not found", http.StatusNotFound))
	case errors.Is(err, services.ErrCatalogUnavailable):
		httpx.WriteError(ctx, w, httpx.NewError("catalog_unavailable", "product directory is unavailable", http.StatusServiceUnavailable))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("catalog_error", "failed to read product directory", http.StatusInternalServerError))
	}
}
