package catalog

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/diyabansal-1605/full-stack-project/internal/domain"
	"github.com/diyabansal-1605/full-stack-project/internal/logger"
)

// Filter returns the products whose name contains query, ignoring case. An
// empty query returns list itself. list is never modified.
func Filter(list []domain.Product, query string) []domain.Product {
	if query == "" {
		return list
	}
	q := strings.ToLower(query)
	out := make([]domain.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, p)
		}
	}
	return out
}

type ProductLister interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

// Search fetches the full product list once and filters it locally.
type Search struct {
	backend ProductLister
	sfg     singleflight.Group

	mu       sync.RWMutex
	loaded   bool
	products []domain.Product
	query    string
}

func NewSearch(backend ProductLister) *Search {
	return &Search{backend: backend}
}

// Load fetches the product list. Concurrent callers share one request and
// later calls return the memoized list.
func (s *Search) Load(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}

	_, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		s.mu.RLock()
		loaded := s.loaded
		s.mu.RUnlock()
		if loaded {
			return nil, nil
		}

		products, err := s.backend.Products(ctx)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.products = products
		s.loaded = true
		s.mu.Unlock()
		return nil, nil
	})
	if err != nil {
		logger.WithContext(ctx).WithError(err).Error("fetch products failed")
	}
	return err
}

func (s *Search) SetQuery(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

func (s *Search) Query() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query
}

// Results recomputes the filtered list from the current products and query.
func (s *Search) Results() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Filter(s.products, s.query)
}
