package models

import "time"

const (
	SaleStatusPending   = "pending"
	SaleStatusPaid      = "paid"
	SaleStatusCancelled = "cancelled"
)

// Sale records one purchase. CreatedAt is assigned by the store and never changes.
type Sale struct {
	ID            uint      `json:"id"`
	ProductID     *uint     `json:"productId"`
	ClientID      *uint     `json:"clientId"`
	ServerID      uint      `json:"serverId"`
	Price         int64     `json:"price"`
	Status        string    `json:"status"`
	TransactionID *string   `json:"transactionId"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s Sale) Clone() Sale {
	s.ProductID = clonePtr(s.ProductID)
	s.ClientID = clonePtr(s.ClientID)
	s.TransactionID = clonePtr(s.TransactionID)
	return s
}

type SaleInput struct {
	ProductID     *uint   `json:"productId" validate:"omitempty,min=1"`
	ClientID      *uint   `json:"clientId" validate:"omitempty,min=1"`
	ServerID      *uint   `json:"serverId" validate:"required,min=1"`
	Price         *int64  `json:"price" validate:"required,min=0"`
	Status        *string `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	TransactionID *string `json:"transactionId" validate:"omitempty,max=100"`
}

func (in *SaleInput) Validate() error {
	return validate.Struct(in)
}

func (in *SaleInput) ToSale() *Sale {
	s := &Sale{
		ProductID:     in.ProductID,
		ClientID:      in.ClientID,
		ServerID:      *in.ServerID,
		Price:         *in.Price,
		Status:        SaleStatusPending,
		TransactionID: in.TransactionID,
	}
	if in.Status != nil {
		s.Status = *in.Status
	}
	return s
}

type SalePatch struct {
	ProductID     *uint   `json:"productId" validate:"omitempty,min=1"`
	ClientID      *uint   `json:"clientId" validate:"omitempty,min=1"`
	Price         *int64  `json:"price" validate:"omitempty,min=0"`
	Status        *string `json:"status" validate:"omitempty,oneof=pending paid cancelled"`
	TransactionID *string `json:"transactionId" validate:"omitempty,max=100"`
}

func (p *SalePatch) Validate() error {
	return validate.Struct(p)
}

func (p *SalePatch) Apply(s *Sale) {
	if p.ProductID != nil {
		s.ProductID = clonePtr(p.ProductID)
	}
	if p.ClientID != nil {
		s.ClientID = clonePtr(p.ClientID)
	}
	if p.Price != nil {
		s.Price = *p.Price
	}
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.TransactionID != nil {
		s.TransactionID = clonePtr(p.TransactionID)
	}
}
