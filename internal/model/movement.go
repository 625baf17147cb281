package model

import (
	"time"

	"github.com/google/uuid"
)

type MovementDirection string

const (
	MovementIn  MovementDirection = "IN"
	MovementOut MovementDirection = "OUT"
)

// Well-known reference numbers written by the service itself.
const (
	RefOpeningBalance = "OPENING"
	RefAdjustment     = "ADJUSTMENT"
)

// StockMovement is one append-only ledger entry: a receipt (IN) or issue (OUT)
// of a product, recorded together with the quantity delta it applied. Movements
// are never updated or deleted; they are the audit trail for every stock change.
type StockMovement struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`

	SupplierID *uuid.UUID `gorm:"type:uuid;index" json:"supplier_id,omitempty"`
	Supplier   *Supplier  `json:"supplier,omitempty" validate:"-"`

	Quantity  int               `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Direction MovementDirection `gorm:"type:varchar(10);not null" json:"direction" validate:"required,oneof=IN OUT"`

	UnitPrice float64 `gorm:"not null;default:0" json:"unit_price" validate:"gte=0"`
	// Snapshot quantity * unit_price, computed at commit time.
	TotalAmount float64 `gorm:"not null;default:0" json:"total_amount"`

	ReferenceNumber string    `gorm:"type:varchar(50)" json:"reference_number"`
	Notes           string    `gorm:"type:text" json:"notes"`
	OccurredAt      time.Time `gorm:"not null;index" json:"occurred_at"`
}

// Delta is the signed effect of the movement on the product's quantity.
func (m *StockMovement) Delta() int {
	if m.Direction == MovementOut {
		return -m.Quantity
	}
	return m.Quantity
}
