package repository

import (
	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Create(tx *gorm.DB, product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	Save(product *model.Product) error
	ApplyDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error)
	SetQuantity(tx *gorm.DB, id uuid.UUID, oldQuantity, newQuantity int, updatedBy string) (int64, error)
	CountMovements(tx *gorm.DB, id uuid.UUID) (int64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

// Create takes a *gorm.DB so product creation can commit atomically with its
// opening-balance movement.
func (r *productRepo) Create(tx *gorm.DB, product *model.Product) error {
	return tx.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) Save(product *model.Product) error {
	return r.db.Save(product).Error
}

// ApplyDelta adds delta to the product's quantity in a single guarded UPDATE.
// The `quantity + delta >= 0` predicate makes the sufficiency check and the
// write one atomic step, so concurrent issues cannot drive stock negative.
// Returns the number of rows updated: 0 means the guard rejected the change.
func (r *productRepo) ApplyDelta(tx *gorm.DB, id uuid.UUID, delta int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity + ? >= 0", id, delta).
		Updates(map[string]interface{}{
			"quantity":   gorm.Expr("quantity + ?", delta),
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}

// SetQuantity overwrites the quantity, guarded on the previously observed
// value. 0 rows means another writer got there first.
func (r *productRepo) SetQuantity(tx *gorm.DB, id uuid.UUID, oldQuantity, newQuantity int, updatedBy string) (int64, error) {
	res := tx.Model(&model.Product{}).
		Where("id = ? AND quantity = ?", id, oldQuantity).
		Updates(map[string]interface{}{
			"quantity":   newQuantity,
			"updated_by": updatedBy,
		})
	return res.RowsAffected, res.Error
}

func (r *productRepo) CountMovements(tx *gorm.DB, id uuid.UUID) (int64, error) {
	var count int64
	err := tx.Model(&model.StockMovement{}).Where("product_id = ?", id).Count(&count).Error
	return count, err
}
