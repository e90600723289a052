package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/gstbill-erp/gstbill/internal/billing"
)

const listCacheKey = "catalog:products:active"

// Service exposes catalog reads plus the product-to-line-item binding used
// by every pick path (manual, barcode, bulk selection).
type Service struct {
	repo  Repository
	cache *Cache
}

// NewService builds Service. The cache may be nil.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// Get fetches one product.
func (s *Service) Get(ctx context.Context, id int64) (*Product, error) {
	return s.repo.Get(ctx, id)
}

// GetByBarcode resolves a scanned code to a product.
func (s *Service) GetByBarcode(ctx context.Context, code string) (*Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("catalog: empty barcode")
	}
	return s.repo.GetByBarcode(ctx, code)
}

// List returns products matching the filters. The unfiltered first page of
// active products is the hot path for the selection modal and is served
// through the cache.
func (s *Service) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	if s.cache != nil && cacheable(filters) {
		var cached struct {
			Products []Product `json:"products"`
			Total    int       `json:"total"`
		}
		err := s.cache.FetchJSON(ctx, listCacheKey, &cached, func(ctx context.Context) (interface{}, error) {
			products, total, err := s.repo.List(ctx, filters)
			if err != nil {
				return nil, err
			}
			return map[string]interface{}{"products": products, "total": total}, nil
		})
		if err == nil {
			return cached.Products, cached.Total, nil
		}
		// Cache trouble must not take the catalog down.
	}
	return s.repo.List(ctx, filters)
}

// RefreshList recomputes the cached product listing; used by the warmup job
// and after stock changes.
func (s *Service) RefreshList(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Invalidate(ctx, listCacheKey); err != nil {
		return err
	}
	_, _, err := s.List(ctx, ListFilters{IsActive: boolPtr(true)})
	return err
}

// ScanLowStock recomputes the low-stock advisory list and stores it in the
// cache for the catalog handler to serve.
func (s *Service) ScanLowStock(ctx context.Context, threshold float64) (int, error) {
	products, err := s.repo.ListLowStock(ctx, threshold)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.StoreLowStock(ctx, products); err != nil {
			return 0, err
		}
	}
	return len(products), nil
}

// BindLine snapshots a product into an invoice row with the requested
// quantity: rate, tax and stock are copied from the catalog at selection
// time, derived fields are computed, and the stock advisory is classified.
// A non-ok advisory does not block the binding.
func (s *Service) BindLine(ctx context.Context, productID int64, quantity float64) (billing.LineItem, billing.StockStatus, error) {
	p, err := s.repo.Get(ctx, productID)
	if err != nil {
		return billing.LineItem{}, "", err
	}
	return bindLine(*p, quantity), billing.CheckStock(quantity, p.StockQuantity), nil
}

// BindBarcode is BindLine for a scanned code with quantity one.
func (s *Service) BindBarcode(ctx context.Context, code string) (billing.LineItem, billing.StockStatus, error) {
	p, err := s.GetByBarcode(ctx, code)
	if err != nil {
		return billing.LineItem{}, "", err
	}
	return bindLine(*p, 1), billing.CheckStock(1, p.StockQuantity), nil
}

func bindLine(p Product, quantity float64) billing.LineItem {
	li := billing.LineItem{
		LineID:          uuid.NewString(),
		ProductID:       p.ID,
		Name:            p.Name,
		HSNCode:         p.HSNCode,
		Quantity:        quantity,
		Unit:            p.Unit,
		Rate:            p.EffectiveRate(),
		GSTPercent:      p.GSTPercent,
		DiscountPercent: p.DiscountPercent,
		StockQuantity:   p.StockQuantity,
	}
	li.Amount, li.PriceIncludingGST = billing.ComputeLine(li.Quantity, li.Rate, li.GSTPercent, li.DiscountPercent)
	return li
}

func cacheable(f ListFilters) bool {
	return f.Search == "" && f.Page <= 1 && f.Limit == 0 && f.IsActive != nil && *f.IsActive
}

func boolPtr(b bool) *bool { return &b }
