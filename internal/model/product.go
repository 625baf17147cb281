package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU         string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name        string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null;default:0" json:"price" validate:"gte=0"`
	CostPrice   float64 `gorm:"not null;default:0" json:"cost_price" validate:"gte=0"`

	// Quantity is derived-but-stored: the ledger is its only legitimate mutator.
	Quantity    int `gorm:"not null;default:0" json:"quantity" validate:"gte=0"`
	MinQuantity int `gorm:"not null;default:0" json:"min_quantity" validate:"gte=0"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null;index" json:"category_id" validate:"uuid_required"`
	Category   *Category `json:"category,omitempty" validate:"-"`

	Image string `gorm:"type:varchar(200)" json:"image"`

	Movements []StockMovement `json:"movements,omitempty"`
}

// IsLowStock reports whether the product is below its reorder threshold.
func (p *Product) IsLowStock() bool {
	return p.Quantity < p.MinQuantity
}

// StockValue is the on-hand valuation at cost.
func (p *Product) StockValue() float64 {
	return float64(p.Quantity) * p.CostPrice
}
