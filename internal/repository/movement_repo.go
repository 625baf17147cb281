package repository

import (
	"time"

	"go-stock-ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MovementRepository interface {
	Create(tx *gorm.DB, movement *model.StockMovement) error
	FindAll() ([]model.StockMovement, error)
	FindByID(id uuid.UUID) (*model.StockMovement, error)
	FindByProduct(productID uuid.UUID) ([]model.StockMovement, error)
	FindBySupplier(supplierID uuid.UUID) ([]model.StockMovement, error)
	DailySeries(startDate, endDate time.Time) ([]DailyMovement, error)
	Stats() (*InventoryStats, error)
}

// DailyMovement aggregates inbound/outbound quantities per day for chart data
type DailyMovement struct {
	Date     string `json:"date"`
	Inbound  int    `json:"inbound"`
	Outbound int    `json:"outbound"`
}

// InventoryStats for overview reporting
type InventoryStats struct {
	TotalProducts  int64   `json:"total_products"`
	LowStockCount  int64   `json:"low_stock_count"`
	TotalValuation float64 `json:"total_valuation"`
}

type movementRepo struct {
	db *gorm.DB
}

func NewMovementRepo(db *gorm.DB) MovementRepository {
	return &movementRepo{db}
}

// Create takes a *gorm.DB so the ledger can insert the movement inside the
// same transaction that applies the quantity delta.
func (r *movementRepo) Create(tx *gorm.DB, movement *model.StockMovement) error {
	return tx.Create(movement).Error
}

func (r *movementRepo) FindAll() ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Product").Preload("Supplier").
		Order("occurred_at DESC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) FindByID(id uuid.UUID) (*model.StockMovement, error) {
	var movement model.StockMovement
	err := r.db.Preload("Product").Preload("Supplier").First(&movement, "id = ?", id).Error
	return &movement, err
}

func (r *movementRepo) FindByProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Supplier").Where("product_id = ?", productID).
		Order("occurred_at DESC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) FindBySupplier(supplierID uuid.UUID) ([]model.StockMovement, error) {
	var movements []model.StockMovement
	err := r.db.Preload("Product").Where("supplier_id = ?", supplierID).
		Order("occurred_at DESC").Find(&movements).Error
	return movements, err
}

func (r *movementRepo) DailySeries(startDate, endDate time.Time) ([]DailyMovement, error) {
	var results []DailyMovement

	rows, err := r.db.Model(&model.StockMovement{}).
		Select(`
			DATE(occurred_at) as date,
			COALESCE(SUM(CASE WHEN direction = 'IN' THEN quantity ELSE 0 END), 0) as inbound,
			COALESCE(SUM(CASE WHEN direction = 'OUT' THEN quantity ELSE 0 END), 0) as outbound
		`).
		Where("occurred_at BETWEEN ? AND ?", startDate, endDate).
		Group("DATE(occurred_at)").
		Order("date ASC").
		Rows()

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var data DailyMovement
		if err := rows.Scan(&data.Date, &data.Inbound, &data.Outbound); err != nil {
			return nil, err
		}
		results = append(results, data)
	}

	return results, rows.Err()
}

func (r *movementRepo) Stats() (*InventoryStats, error) {
	var stats InventoryStats

	if err := r.db.Model(&model.Product{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Where("quantity < min_quantity").
		Count(&stats.LowStockCount).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&model.Product{}).
		Select("COALESCE(SUM(quantity * cost_price), 0)").
		Scan(&stats.TotalValuation).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}
