package service

import (
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"github.com/google/uuid"
)

// ReportService is the read-only projection layer over products and
// movements. It never mutates state.
type ReportService interface {
	CurrentInventory() ([]InventoryLine, error)
	InventoryStats() (*repository.InventoryStats, error)
	MovementHistory() ([]model.StockMovement, error)
	MovementByID(id uuid.UUID) (*model.StockMovement, error)
	MovementsForProduct(productID uuid.UUID) ([]model.StockMovement, error)
	MovementsForSupplier(supplierID uuid.UUID) ([]model.StockMovement, error)
	DailyMovementSeries(days int) ([]repository.DailyMovement, error)
}

// InventoryLine is one row of the current-inventory report: the product plus
// its derived valuation and reorder flag.
type InventoryLine struct {
	Product    model.Product `json:"product"`
	StockValue float64       `json:"stock_value"`
	LowStock   bool          `json:"low_stock"`
}

type reportService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
}

func NewReportService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) ReportService {
	return &reportService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

func (s *reportService) CurrentInventory() ([]InventoryLine, error) {
	products, err := s.productRepo.FindAll()
	if err != nil {
		return nil, err
	}

	lines := make([]InventoryLine, len(products))
	for i, p := range products {
		lines[i] = InventoryLine{
			Product:    p,
			StockValue: p.StockValue(),
			LowStock:   p.IsLowStock(),
		}
	}
	return lines, nil
}

func (s *reportService) InventoryStats() (*repository.InventoryStats, error) {
	return s.movementRepo.Stats()
}

func (s *reportService) MovementHistory() ([]model.StockMovement, error) {
	return s.movementRepo.FindAll()
}

func (s *reportService) MovementByID(id uuid.UUID) (*model.StockMovement, error) {
	movement, err := s.movementRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "movement", id)
	}
	return movement, nil
}

func (s *reportService) MovementsForProduct(productID uuid.UUID) ([]model.StockMovement, error) {
	return s.movementRepo.FindByProduct(productID)
}

func (s *reportService) MovementsForSupplier(supplierID uuid.UUID) ([]model.StockMovement, error) {
	return s.movementRepo.FindBySupplier(supplierID)
}

func (s *reportService) DailyMovementSeries(days int) ([]repository.DailyMovement, error) {
	endDate := time.Now()
	startDate := endDate.AddDate(0, 0, -days)
	return s.movementRepo.DailySeries(startDate, endDate)
}
