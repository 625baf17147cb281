package service

import (
	"fmt"
	"time"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/internal/ws"
	"go-stock-ledger/pkg/apperr"
	"go-stock-ledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerService is the sole normal-path writer of Product.Quantity. Every
// quantity change it makes commits atomically with exactly one StockMovement
// record, so current stock always reconciles with movement history.
type LedgerService interface {
	RecordMovement(req *MovementRequest, actorID string) (*model.StockMovement, error)
}

type MovementRequest struct {
	ProductID       uuid.UUID               `json:"product_id" validate:"uuid_required"`
	SupplierID      *uuid.UUID              `json:"supplier_id"`
	Quantity        int                     `json:"quantity" validate:"required,gt=0"`
	Direction       model.MovementDirection `json:"direction" validate:"required,oneof=IN OUT"`
	UnitPrice       float64                 `json:"unit_price" validate:"gte=0"`
	ReferenceNumber string                  `json:"reference_number"`
	Notes           string                  `json:"notes"`
}

type ledgerService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewLedgerService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository, db *gorm.DB, hub *ws.Hub) LedgerService {
	return &ledgerService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		db:           db,
		wsHub:        hub,
	}
}

// RecordMovement validates the request, applies the quantity delta and inserts
// the movement record in one database transaction. On any failure the product
// row and the movement table are left untouched.
func (s *ledgerService) RecordMovement(req *MovementRequest, actorID string) (*model.StockMovement, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	movement := &model.StockMovement{
		ProductID:       req.ProductID,
		SupplierID:      req.SupplierID,
		Quantity:        req.Quantity,
		Direction:       req.Direction,
		UnitPrice:       req.UnitPrice,
		TotalAmount:     float64(req.Quantity) * req.UnitPrice,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		OccurredAt:      time.Now(),
	}
	movement.CreatedBy = actorID
	movement.UpdatedBy = actorID

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", req.ProductID).Error; err != nil {
			return notFoundOr(err, "product", req.ProductID)
		}

		if req.SupplierID != nil {
			var supplier model.Supplier
			if err := tx.First(&supplier, "id = ?", *req.SupplierID).Error; err != nil {
				return notFoundOr(err, "supplier", *req.SupplierID)
			}
		}

		if req.Direction == model.MovementOut && product.Quantity < req.Quantity {
			return fmt.Errorf("%w: product '%s' has %d on hand, requested %d",
				apperr.ErrInsufficientStock, product.Name, product.Quantity, req.Quantity)
		}

		// The guarded UPDATE re-checks sufficiency at write time. The load
		// above can race with a concurrent issue, so RowsAffected is the
		// authoritative answer.
		rows, err := s.productRepo.ApplyDelta(tx, product.ID, movement.Delta(), actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return fmt.Errorf("%w: product '%s' has insufficient stock for issue of %d",
				apperr.ErrInsufficientStock, product.Name, req.Quantity)
		}

		return s.movementRepo.Create(tx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify(ws.StockEvent{
		Action: ws.ActionMovementRecorded,
		Actor:  actorID,
		Payload: map[string]interface{}{
			"movement_id": movement.ID,
			"product_id":  product.ID,
			"sku":         product.SKU,
			"direction":   movement.Direction,
			"quantity":    movement.Quantity,
			"new_stock":   product.Quantity + movement.Delta(),
		},
		Message: fmt.Sprintf("%d units of '%s' (%s)", movement.Quantity, product.Name, movement.Direction),
	})

	return movement, nil
}
