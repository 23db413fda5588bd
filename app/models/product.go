package models

// Product is an item a server sells. A nil Stock means unlimited.
type Product struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       int64   `json:"price"`
	ServerID    uint    `json:"serverId"`
	IsActive    bool    `json:"isActive"`
	Stock       *int    `json:"stock"`
	ImageURL    *string `json:"imageUrl"`
}

func (p Product) Clone() Product {
	p.Description = clonePtr(p.Description)
	p.Stock = clonePtr(p.Stock)
	p.ImageURL = clonePtr(p.ImageURL)
	return p
}

type ProductInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Price       *int64  `json:"price" validate:"required,min=0"`
	ServerID    *uint   `json:"serverId" validate:"required,min=1"`
	IsActive    *bool   `json:"isActive"`
	Stock       *int    `json:"stock" validate:"omitempty,min=0"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

func (in *ProductInput) Validate() error {
	return validate.Struct(in)
}

func (in *ProductInput) ToProduct() *Product {
	p := &Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       *in.Price,
		ServerID:    *in.ServerID,
		IsActive:    true,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
	return p
}

type ProductPatch struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Price       *int64  `json:"price" validate:"omitempty,min=0"`
	IsActive    *bool   `json:"isActive"`
	Stock       *int    `json:"stock" validate:"omitempty,min=0"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,url"`
}

func (p *ProductPatch) Validate() error {
	return validate.Struct(p)
}

func (p *ProductPatch) Apply(pr *Product) {
	if p.Name != nil {
		pr.Name = *p.Name
	}
	if p.Description != nil {
		pr.Description = clonePtr(p.Description)
	}
	if p.Price != nil {
		pr.Price = *p.Price
	}
	if p.IsActive != nil {
		pr.IsActive = *p.IsActive
	}
	if p.Stock != nil {
		pr.Stock = clonePtr(p.Stock)
	}
	if p.ImageURL != nil {
		pr.ImageURL = clonePtr(p.ImageURL)
	}
}
