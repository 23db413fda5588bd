package repository

import (
	"context"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// productRepository implements the ProductRepository interface
type productRepository struct {
	s *Store
}

// NewProductRepository creates a new product repository instance
func NewProductRepository(s *Store) ProductRepository {
	return &productRepository{s: s}
}

func (r *productRepository) Create(_ context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	product.ID = r.s.products.allocate()
	r.s.products.put(product.ID, product.Clone())
	return nil
}

func (r *productRepository) GetByID(_ context.Context, id uint) (*models.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.products.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	p = p.Clone()
	return &p, nil
}

func (r *productRepository) Update(_ context.Context, id uint, patch models.ProductPatch) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.products.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	p = p.Clone()
	patch.Apply(&p)
	r.s.products.put(id, p)
	p = p.Clone()
	return &p, nil
}

func (r *productRepository) List(_ context.Context) ([]models.Product, error) {
	return r.filter(func(models.Product) bool { return true }), nil
}

// ListByServer returns every product of a server, inactive ones included.
func (r *productRepository) ListByServer(_ context.Context, serverID uint) ([]models.Product, error) {
	return r.filter(func(p models.Product) bool { return p.ServerID == serverID }), nil
}

func (r *productRepository) filter(match func(models.Product) bool) []models.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	products := make([]models.Product, 0)
	r.s.products.each(func(p models.Product) bool {
		if match(p) {
			products = append(products, p.Clone())
		}
		return true
	})
	return products
}
