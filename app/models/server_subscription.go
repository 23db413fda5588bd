package models

import "time"

// ServerSubscription links a Server to a SubscriptionTier. At most one
// subscription per server is active; the repository enforces it.
type ServerSubscription struct {
	ID        uint       `json:"id"`
	ServerID  uint       `json:"serverId"`
	TierID    uint       `json:"tierId"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate"`
	IsActive  bool       `json:"isActive"`
}

func (s ServerSubscription) Clone() ServerSubscription {
	s.EndDate = clonePtr(s.EndDate)
	return s
}

// Ended reports whether the subscription has an end date at or before now.
func (s *ServerSubscription) Ended(now time.Time) bool {
	return s.EndDate != nil && !s.EndDate.After(now)
}

type ServerSubscriptionInput struct {
	ServerID *uint      `json:"serverId" validate:"required,min=1"`
	TierID   *uint      `json:"tierId" validate:"required,min=1"`
	EndDate  *time.Time `json:"endDate"`
	IsActive *bool      `json:"isActive"`
}

func (in *ServerSubscriptionInput) Validate() error {
	return validate.Struct(in)
}

func (in *ServerSubscriptionInput) ToSubscription() *ServerSubscription {
	s := &ServerSubscription{
		ServerID: *in.ServerID,
		TierID:   *in.TierID,
		EndDate:  in.EndDate,
		IsActive: true,
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	return s
}

type ServerSubscriptionPatch struct {
	TierID   *uint      `json:"tierId" validate:"omitempty,min=1"`
	EndDate  *time.Time `json:"endDate"`
	IsActive *bool      `json:"isActive"`
}

func (p *ServerSubscriptionPatch) Validate() error {
	return validate.Struct(p)
}

func (p *ServerSubscriptionPatch) Apply(s *ServerSubscription) {
	if p.TierID != nil {
		s.TierID = *p.TierID
	}
	if p.EndDate != nil {
		s.EndDate = clonePtr(p.EndDate)
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}
