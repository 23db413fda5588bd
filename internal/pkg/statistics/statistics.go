package statistics

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	fiberlog "github.com/gofiber/fiber/v2/log"

	"github.com/ManuelReschke/VendaBot/app/models"
	"github.com/ManuelReschke/VendaBot/app/repository"
	"github.com/ManuelReschke/VendaBot/internal/pkg/cache"
)

const (
	CacheKeyDashboard  = "statistics:dashboard"
	CacheExpiration    = 30 * time.Second
	DefaultServerLimit = 20
	week               = 7 * 24 * time.Hour
)

// DashboardStats is the payload of GET /api/dashboard/stats.
type DashboardStats struct {
	Sales struct {
		Total        int   `json:"total"`
		Amount       int64 `json:"amount"`
		WeeklyGrowth *int  `json:"weeklyGrowth"`
	} `json:"sales"`
	Clients struct {
		Total    int `json:"total"`
		NewToday int `json:"newToday"`
	} `json:"clients"`
	Products struct {
		Total  int `json:"total"`
		Active int `json:"active"`
	} `json:"products"`
	Servers struct {
		Total int `json:"total"`
		Limit int `json:"limit"`
	} `json:"servers"`
}

// Service computes dashboard aggregates, caching them when Redis is configured.
type Service struct {
	repos       *repository.Repositories
	cache       *cache.Cache
	serverLimit int
	now         func() time.Time

	// mu orders cache writes against invalidations; generation counts
	// invalidations so a snapshot computed before one is never stored.
	mu         sync.Mutex
	generation uint64
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithServerLimit(limit int) Option {
	return func(s *Service) { s.serverLimit = limit }
}

// NewService builds the service. c may be nil.
func NewService(repos *repository.Repositories, c *cache.Cache, opts ...Option) *Service {
	s := &Service{
		repos:       repos,
		cache:       c,
		serverLimit: DefaultServerLimit,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dashboard returns the cached aggregates or computes fresh ones.
func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	if raw, err := s.cache.Get(ctx, CacheKeyDashboard); err == nil {
		var stats DashboardStats
		if err := json.Unmarshal([]byte(raw), &stats); err == nil {
			return &stats, nil
		}
		fiberlog.Warnf("statistics: dropping unreadable cache entry")
	} else if !errors.Is(err, cache.ErrMiss) {
		fiberlog.Warnf("statistics: cache read failed: %v", err)
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the aggregates and stores them in the cache unless an
// invalidation happened while they were being computed.
func (s *Service) Refresh(ctx context.Context) (*DashboardStats, error) {
	gen := s.currentGeneration()
	stats, err := s.Compute(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, gen, stats)
	return stats, nil
}

// Invalidate drops the cached aggregates. Called after every sale mutation.
func (s *Service) Invalidate(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	if err := s.cache.Delete(ctx, CacheKeyDashboard); err != nil {
		fiberlog.Warnf("statistics: cache invalidation failed: %v", err)
	}
}

func (s *Service) currentGeneration() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// store writes stats computed at generation gen. It reports false when the
// snapshot was stale and skipped.
func (s *Service) store(ctx context.Context, gen uint64, stats *DashboardStats) bool {
	raw, err := json.Marshal(stats)
	if err != nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return false
	}
	if err := s.cache.Set(ctx, CacheKeyDashboard, raw, CacheExpiration); err != nil {
		fiberlog.Warnf("statistics: cache write failed: %v", err)
	}
	return true
}

// Compute reads the store directly, bypassing the cache.
func (s *Service) Compute(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	stats := &DashboardStats{}

	sales, err := s.repos.Sale.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.Sales.Total = len(sales)
	for _, sale := range sales {
		stats.Sales.Amount += sale.Price
	}
	stats.Sales.WeeklyGrowth = weeklyGrowth(sales, now)

	users, err := s.repos.User.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.Clients.Total = len(users)
	stats.Clients.NewToday, err = s.repos.User.CountSince(ctx, startOfDay(now))
	if err != nil {
		return nil, err
	}

	products, err := s.repos.Product.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.Products.Total = len(products)
	for _, p := range products {
		if p.IsActive {
			stats.Products.Active++
		}
	}

	servers, err := s.repos.Server.List(ctx)
	if err != nil {
		return nil, err
	}
	stats.Servers.Total = len(servers)
	stats.Servers.Limit = s.serverLimit

	return stats, nil
}

// weeklyGrowth compares the sale count of the last 7 days with the 7 days
// before, as a rounded percentage. nil when the earlier week had no sales.
func weeklyGrowth(sales []models.Sale, now time.Time) *int {
	current, previous := 0, 0
	for _, sale := range sales {
		age := now.Sub(sale.CreatedAt)
		switch {
		case age < 0:
		case age < week:
			current++
		case age < 2*week:
			previous++
		}
	}
	if previous == 0 {
		return nil
	}
	growth := int(math.Round(float64(current-previous) * 100 / float64(previous)))
	return &growth
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
