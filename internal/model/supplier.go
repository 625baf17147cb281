package model

// Supplier is the counterpart of inbound movements. Referenced-not-owned by
// StockMovement: a supplier with recorded movements cannot be deleted.
type Supplier struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	ContactPerson string `gorm:"type:varchar(100)" json:"contact_person"`
	Email         string `gorm:"type:varchar(120)" json:"email" validate:"omitempty,email"`
	Phone         string `gorm:"type:varchar(20)" json:"phone"`
	Address       string `gorm:"type:text" json:"address"`

	Movements []StockMovement `json:"movements,omitempty"`
}
