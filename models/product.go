package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string           `gorm:"not null" json:"name"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"price"`
	OriginalPrice *decimal.Decimal `gorm:"type:numeric(12,2)" json:"original_price,omitempty"`
	Images        []string         `gorm:"serializer:json" json:"images"`
	Category      string           `gorm:"index" json:"category"`
	Team          string           `gorm:"index" json:"team"`
	Sizes         []string         `gorm:"serializer:json" json:"sizes"`
	IsOnSale      bool             `json:"is_on_sale"`
	Rating        float64          `json:"rating"`
	ReviewCount   int              `json:"review_count"`
	StockQuantity int              `json:"stock_quantity"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `gorm:"index" json:"-"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// HasSize reports whether size is in the product's size list.
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// MainImage returns the first catalog image, if any.
func (p *Product) MainImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}
