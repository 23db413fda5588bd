package models

const DefaultPrefix = "!"

// Server is a Discord guild the bot operates in (the billing tenant).
type Server struct {
	ID              uint    `json:"id"`
	DiscordServerID string  `json:"discordServerId"`
	Name            string  `json:"name"`
	IconURL         *string `json:"iconUrl"`
	OwnerID         *uint   `json:"ownerId"`
	PremiumTier     int     `json:"premiumTier"`
	Prefix          string  `json:"prefix"`
	IsActive        bool    `json:"isActive"`
}

func (s Server) Clone() Server {
	s.IconURL = clonePtr(s.IconURL)
	s.OwnerID = clonePtr(s.OwnerID)
	return s
}

// ServerInput is the insert schema for POST /api/servers.
type ServerInput struct {
	DiscordServerID string  `json:"discordServerId" validate:"required,max=32"`
	Name            string  `json:"name" validate:"required,max=100"`
	IconURL         *string `json:"iconUrl" validate:"omitempty,url"`
	OwnerID         *uint   `json:"ownerId" validate:"omitempty,min=1"`
	PremiumTier     *int    `json:"premiumTier" validate:"omitempty,min=0,max=3"`
	Prefix          *string `json:"prefix" validate:"omitempty,min=1,max=5"`
	IsActive        *bool   `json:"isActive"`
}

func (in *ServerInput) Validate() error {
	return validate.Struct(in)
}

// ToServer applies the column defaults (tier 0, prefix "!", active).
func (in *ServerInput) ToServer() *Server {
	s := &Server{
		DiscordServerID: in.DiscordServerID,
		Name:            in.Name,
		IconURL:         in.IconURL,
		OwnerID:         in.OwnerID,
		Prefix:          DefaultPrefix,
		IsActive:        true,
	}
	if in.PremiumTier != nil {
		s.PremiumTier = *in.PremiumTier
	}
	if in.Prefix != nil {
		s.Prefix = *in.Prefix
	}
	if in.IsActive != nil {
		s.IsActive = *in.IsActive
	}
	return s
}

type ServerPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	IconURL     *string `json:"iconUrl" validate:"omitempty,url"`
	OwnerID     *uint   `json:"ownerId" validate:"omitempty,min=1"`
	PremiumTier *int    `json:"premiumTier" validate:"omitempty,min=0,max=3"`
	Prefix      *string `json:"prefix" validate:"omitempty,min=1,max=5"`
	IsActive    *bool   `json:"isActive"`
}

func (p *ServerPatch) Validate() error {
	return validate.Struct(p)
}

func (p *ServerPatch) Apply(s *Server) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.IconURL != nil {
		s.IconURL = clonePtr(p.IconURL)
	}
	if p.OwnerID != nil {
		s.OwnerID = clonePtr(p.OwnerID)
	}
	if p.PremiumTier != nil {
		s.PremiumTier = *p.PremiumTier
	}
	if p.Prefix != nil {
		s.Prefix = *p.Prefix
	}
	if p.IsActive != nil {
		s.IsActive = *p.IsActive
	}
}
