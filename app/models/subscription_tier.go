package models

const DefaultTierColor = "#7289DA"

// SubscriptionTier is a sellable plan. Level is the ordinal used for command
// gating: 1=Basic, 2=Pro, 3=Premium.
type SubscriptionTier struct {
	ID          uint     `json:"id"`
	Name        string   `json:"name"`
	Price       int64    `json:"price"`
	Description *string  `json:"description"`
	Features    []string `json:"features"`
	Level       int      `json:"level"`
	Color       string   `json:"color"`
	MaxSales    *int     `json:"maxSales"`
	MaxServers  *int     `json:"maxServers"`
}

func (t SubscriptionTier) Clone() SubscriptionTier {
	t.Description = clonePtr(t.Description)
	if t.Features != nil {
		t.Features = append([]string(nil), t.Features...)
	}
	t.MaxSales = clonePtr(t.MaxSales)
	t.MaxServers = clonePtr(t.MaxServers)
	return t
}

type SubscriptionTierInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Price       *int64   `json:"price" validate:"required,min=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Features    []string `json:"features" validate:"omitempty,dive,required,max=200"`
	Level       *int     `json:"level" validate:"required,min=1,max=3"`
	Color       *string  `json:"color" validate:"omitempty,hexcolor"`
	MaxSales    *int     `json:"maxSales" validate:"omitempty,min=0"`
	MaxServers  *int     `json:"maxServers" validate:"omitempty,min=0"`
}

func (in *SubscriptionTierInput) Validate() error {
	return validate.Struct(in)
}

func (in *SubscriptionTierInput) ToTier() *SubscriptionTier {
	t := &SubscriptionTier{
		Name:        in.Name,
		Price:       *in.Price,
		Description: in.Description,
		Features:    in.Features,
		Level:       *in.Level,
		Color:       DefaultTierColor,
		MaxSales:    in.MaxSales,
		MaxServers:  in.MaxServers,
	}
	if in.Color != nil {
		t.Color = *in.Color
	}
	return t
}

type SubscriptionTierPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Price       *int64   `json:"price" validate:"omitempty,min=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Features    []string `json:"features" validate:"omitempty,dive,required,max=200"`
	Level       *int     `json:"level" validate:"omitempty,min=1,max=3"`
	Color       *string  `json:"color" validate:"omitempty,hexcolor"`
	MaxSales    *int     `json:"maxSales" validate:"omitempty,min=0"`
	MaxServers  *int     `json:"maxServers" validate:"omitempty,min=0"`
}

func (p *SubscriptionTierPatch) Validate() error {
	return validate.Struct(p)
}

func (p *SubscriptionTierPatch) Apply(t *SubscriptionTier) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Price != nil {
		t.Price = *p.Price
	}
	if p.Description != nil {
		t.Description = clonePtr(p.Description)
	}
	if p.Features != nil {
		t.Features = append([]string(nil), p.Features...)
	}
	if p.Level != nil {
		t.Level = *p.Level
	}
	if p.Color != nil {
		t.Color = *p.Color
	}
	if p.MaxSales != nil {
		t.MaxSales = clonePtr(p.MaxSales)
	}
	if p.MaxServers != nil {
		t.MaxServers = clonePtr(p.MaxServers)
	}
}
