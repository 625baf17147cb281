package model

// Category groups products for reporting. Reference data only: it carries no
// computed state and owns its products (a category with products cannot be deleted).
type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`

	Products []Product `json:"products,omitempty"`
}
