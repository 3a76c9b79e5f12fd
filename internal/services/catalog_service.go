package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	domain "github.com/lojaviva/pos-api/internal/domain"
	"github.com/lojaviva/pos-api/internal/repositories"
)

var errCatalogRepositoryRequired = errors.New("catalog service: repository is required")

// ErrCatalogInvalidInput indicates the caller supplied invalid input.
var ErrCatalogInvalidInput = errors.New("catalog service: invalid input")

// ErrCatalogNotFound indicates the requested product does not exist.
var ErrCatalogNotFound = errors.New("catalog service: not found")

// ErrCatalogUnavailable indicates the product directory cannot be read.
var ErrCatalogUnavailable = errors.New("catalog service: unavailable")

// CatalogServiceDeps wires the product repository for catalog operations.
type CatalogServiceDeps struct {
	Repository repositories.ProductRepository
	Logger     func(context.Context, string, map[string]any)
}

type catalogService struct {
	repo   repositories.ProductRepository
	logger func(context.Context, string, map[string]any)
}

// NewCatalogService constructs a CatalogService enforcing dependency validation.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Repository == nil {
		return nil, errCatalogRepositoryRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	return &catalogService{repo: deps.Repository, logger: logger}, nil
}

// ListProducts returns the full directory ordered by name.
func (s *catalogService) ListProducts(ctx context.Context) ([]Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products, nil
}

// SearchProducts fuzzy-matches the query against product name, code,
// category, and description, tolerating partial words. An empty query
// returns the full directory.
func (s *catalogService) SearchProducts(ctx context.Context, query string) ([]Product, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return s.ListProducts(ctx)
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}

	haystack := make([]string, len(products))
	for i, p := range products {
		haystack[i] = strings.ToLower(strings.Join([]string{p.Name, p.Code, string(p.Category), p.Description}, " "))
	}

	matches := fuzzy.Find(strings.ToLower(trimmed), haystack)
	results := make([]Product, 0, len(matches))
	for _, match := range matches {
		results = append(results, products[match.Index])
	}
	return results, nil
}

// GetProduct fetches a single product by id.
func (s *catalogService) GetProduct(ctx context.Context, productID string) (Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return Product{}, ErrCatalogInvalidInput
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return Product{}, s.translateRepoError(err)
	}
	return product, nil
}

// ListProductsByCategory filters the directory by category.
func (s *catalogService) ListProductsByCategory(ctx context.Context, category domain.ProductCategory) ([]Product, error) {
	if strings.TrimSpace(string(category)) == "" {
		return nil, ErrCatalogInvalidInput
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, s.translateRepoError(err)
	}

	filtered := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Name < filtered[j].Name })
	return filtered, nil
}

func (s *catalogService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		if repoErr.IsNotFound() {
			return ErrCatalogNotFound
		}
		return ErrCatalogUnavailable
	}
	return ErrCatalogUnavailable
}
