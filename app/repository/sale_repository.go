package repository

import (
	"context"
	"sort"
	"time"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// saleRepository implements the SaleRepository interface
type saleRepository struct {
	s *Store
}

// NewSaleRepository creates a new sale repository instance
func NewSaleRepository(s *Store) SaleRepository {
	return &saleRepository{s: s}
}

// Create stores a sale, assigning ID and CreatedAt
func (r *saleRepository) Create(_ context.Context, sale *models.Sale) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if sale.Status == "" {
		sale.Status = models.SaleStatusPending
	}
	sale.ID = r.s.sales.allocate()
	sale.CreatedAt = r.s.timestamp()
	r.s.sales.put(sale.ID, sale.Clone())
	return nil
}

func (r *saleRepository) GetByID(_ context.Context, id uint) (*models.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sale, ok := r.s.sales.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	sale = sale.Clone()
	return &sale, nil
}

// Update applies a partial update; CreatedAt is immutable
func (r *saleRepository) Update(_ context.Context, id uint, patch models.SalePatch) (*models.Sale, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sale, ok := r.s.sales.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	sale = sale.Clone()
	patch.Apply(&sale)
	r.s.sales.put(id, sale)
	sale = sale.Clone()
	return &sale, nil
}

func (r *saleRepository) List(_ context.Context) ([]models.Sale, error) {
	return r.filter(func(models.Sale) bool { return true }), nil
}

func (r *saleRepository) ListByServer(_ context.Context, serverID uint) ([]models.Sale, error) {
	return r.filter(func(s models.Sale) bool { return s.ServerID == serverID }), nil
}

// ListByClient returns a client's purchases, newest first.
func (r *saleRepository) ListByClient(_ context.Context, clientID uint) ([]models.Sale, error) {
	sales := r.filter(func(s models.Sale) bool { return s.ClientID != nil && *s.ClientID == clientID })
	newestFirst(sales)
	return sales, nil
}

// ListBetween returns the sales of a server created in [from, to).
func (r *saleRepository) ListBetween(_ context.Context, serverID uint, from, to time.Time) ([]models.Sale, error) {
	return r.filter(func(s models.Sale) bool {
		return s.ServerID == serverID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to)
	}), nil
}

// Recent returns up to limit sales ordered by creation time, newest first.
func (r *saleRepository) Recent(_ context.Context, limit int) ([]models.Sale, error) {
	sales := r.filter(func(models.Sale) bool { return true })
	newestFirst(sales)
	if limit >= 0 && len(sales) > limit {
		sales = sales[:limit]
	}
	return sales, nil
}

// Stats sums all sales regardless of status.
func (r *saleRepository) Stats(_ context.Context) (SalesStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats SalesStats
	r.s.sales.each(func(s models.Sale) bool {
		stats.TotalSales++
		stats.TotalAmount += s.Price
		return true
	})
	return stats, nil
}

func (r *saleRepository) filter(match func(models.Sale) bool) []models.Sale {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sales := make([]models.Sale, 0)
	r.s.sales.each(func(s models.Sale) bool {
		if match(s) {
			sales = append(sales, s.Clone())
		}
		return true
	})
	return sales
}

func newestFirst(sales []models.Sale) {
	sort.SliceStable(sales, func(i, j int) bool {
		if !sales[i].CreatedAt.Equal(sales[j].CreatedAt) {
			return sales[i].CreatedAt.After(sales[j].CreatedAt)
		}
		return sales[i].ID > sales[j].ID
	})
}
