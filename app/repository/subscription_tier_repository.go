package repository

import (
	"context"

	"github.com/ManuelReschke/VendaBot/app/models"
)

// subscriptionTierRepository implements the SubscriptionTierRepository interface
type subscriptionTierRepository struct {
	s *Store
}

// NewSubscriptionTierRepository creates a new subscription tier repository instance
func NewSubscriptionTierRepository(s *Store) SubscriptionTierRepository {
	return &subscriptionTierRepository{s: s}
}

func (r *subscriptionTierRepository) Create(_ context.Context, tier *models.SubscriptionTier) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tier.ID = r.s.tiers.allocate()
	r.s.tiers.put(tier.ID, tier.Clone())
	return nil
}

func (r *subscriptionTierRepository) GetByID(_ context.Context, id uint) (*models.SubscriptionTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tier, ok := r.s.tiers.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	tier = tier.Clone()
	return &tier, nil
}

func (r *subscriptionTierRepository) Update(_ context.Context, id uint, patch models.SubscriptionTierPatch) (*models.SubscriptionTier, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tier, ok := r.s.tiers.rows[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	tier = tier.Clone()
	patch.Apply(&tier)
	r.s.tiers.put(id, tier)
	tier = tier.Clone()
	return &tier, nil
}

func (r *subscriptionTierRepository) List(_ context.Context) ([]models.SubscriptionTier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	tiers := make([]models.SubscriptionTier, 0, r.s.tiers.len())
	r.s.tiers.each(func(tier models.SubscriptionTier) bool {
		tiers = append(tiers, tier.Clone())
		return true
	})
	return tiers, nil
}
