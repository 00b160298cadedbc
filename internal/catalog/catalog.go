package catalog

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/shopit/shopclient/internal/domain"
)

// Reader is the backend's product read surface.
type Reader interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// Service serves catalog reads through a short-lived in-memory cache.
// Concurrent misses for the same key are collapsed with singleflight so the
// backend sees one request per key.
type Service struct {
	api    Reader
	ttl    time.Duration
	logger *zap.Logger
	sfg    singleflight.Group

	mu       sync.RWMutex
	products map[string]cachedProduct
	list     []domain.Product
	listAt   time.Time
}

type cachedProduct struct {
	product *domain.Product
	at      time.Time
}

// NewService creates a catalog service with the given cache TTL.
func NewService(api Reader, ttl time.Duration, logger *zap.Logger) *Service {
	return &Service{
		api:      api,
		ttl:      ttl,
		logger:   logger,
		products: make(map[string]cachedProduct),
	}
}

// ListProducts returns the catalog, cached for the TTL.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	if s.list != nil && time.Since(s.listAt) < s.ttl {
		list := s.list
		s.mu.RUnlock()
		return list, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sfg.Do("list", func() (interface{}, error) {
		list, err := s.api.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.list = list
		s.listAt = time.Now()
		s.mu.Unlock()
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// GetProduct returns one product, cached for the TTL.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	if c, ok := s.products[id]; ok && time.Since(c.at) < s.ttl {
		s.mu.RUnlock()
		return c.product, nil
	}
	s.mu.RUnlock()

	v, err, _ := s.sfg.Do(id, func() (interface{}, error) {
		product, err := s.api.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.products[id] = cachedProduct{product: product, at: time.Now()}
		s.mu.Unlock()
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// Invalidate drops all cached entries. Called after admin catalog writes so
// the next read reflects the mutation.
func (s *Service) Invalidate() {
	s.mu.Lock()
	s.list = nil
	s.products = make(map[string]cachedProduct)
	s.mu.Unlock()
}
