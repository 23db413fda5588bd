package repository

import (
	"context"
	"time"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// serverSubscriptionRepository implements the ServerSubscriptionRepository interface.
// Activating a subscription deactivates every other active subscription of the
// same server inside the same critical section.
type serverSubscriptionRepository struct {
	s *Store
}

// NewServerSubscriptionRepository creates a new server subscription repository instance
func NewServerSubscriptionRepository(s *Store) ServerSubscriptionRepository {
	return &serverSubscriptionRepository{s: s}
}

func (r *serverSubscriptionRepository) Create(_ context.Context, sub *models.ServerSubscription) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.servers.rows[sub.ServerID]; !ok {
		return ErrRecordNotFound
	}
	if _, ok := r.s.tiers.rows[sub.TierID]; !ok {
		return ErrRecordNotFound
	}

	sub.ID = r.s.subscriptions.allocate()
	if sub.StartDate.IsZero() {
		sub.StartDate = r.s.timestamp()
	}
	if sub.IsActive {
		r.deactivateOthersLocked(sub.ServerID, sub.ID)
	}
	r.s.subscriptions.put(sub.ID, sub.Clone())
	return nil
}

func (r *serverSubscriptionRepository) deactivateOthersLocked(serverID, keep uint) {
	for _, id := range r.s.subscriptions.order {
		other := r.s.subscriptions.rows[id]
		if id != keep && other.ServerID == serverID && other.IsActive {
			other.IsActive = false
			r.s.subscriptions.rows[id] = other
		}
	}
}

func (r *serverSubscriptionRepository) GetByID(_ context.Context, id uint) (*models.ServerSubscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sub, ok := r.s.subscriptions.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	sub = sub.Clone()
	return &sub, nil
}

// GetActive returns the server's active subscription. Should several rows be
// active, the newest (highest id) wins.
func (r *serverSubscriptionRepository) GetActive(_ context.Context, serverID uint) (*models.ServerSubscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *models.ServerSubscription
	r.s.subscriptions.each(func(sub models.ServerSubscription) bool {
		if sub.ServerID == serverID && sub.IsActive {
			sub = sub.Clone()
			found = &sub
		}
		return true
	})
	if found == nil {
		return nil, ErrRecordNotFound
	}
	return found, nil
}

func (r *serverSubscriptionRepository) Update(_ context.Context, id uint, patch models.ServerSubscriptionPatch) (*models.ServerSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	sub, ok := r.s.subscriptions.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	if patch.TierID != nil {
		if _, ok := r.s.tiers.rows[*patch.TierID]; !ok {
			return nil, ErrRecordNotFound
		}
	}
	sub = sub.Clone()
	patch.Apply(&sub)
	if sub.IsActive {
		r.deactivateOthersLocked(sub.ServerID, id)
	}
	r.s.subscriptions.put(id, sub)
	sub = sub.Clone()
	return &sub, nil
}

func (r *serverSubscriptionRepository) List(_ context.Context) ([]models.ServerSubscription, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	subs := make([]models.ServerSubscription, 0, r.s.subscriptions.len())
	r.s.subscriptions.each(func(sub models.ServerSubscription) bool {
		subs = append(subs, sub.Clone())
		return true
	})
	return subs, nil
}

// ExpireEnded deactivates active subscriptions whose end date has passed and
// returns the rows it changed.
func (r *serverSubscriptionRepository) ExpireEnded(_ context.Context, now time.Time) ([]models.ServerSubscription, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	expired := make([]models.ServerSubscription, 0)
	for _, id := range r.s.subscriptions.order {
		sub := r.s.subscriptions.rows[id]
		if !sub.IsActive || !sub.Ended(now) {
			continue
		}
		sub.IsActive = false
		r.s.subscriptions.rows[id] = sub
		expired = append(expired, sub.Clone())
	}
	return expired, nil
}
