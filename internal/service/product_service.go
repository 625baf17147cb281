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

// ProductService manages product master data. Quantity is out of reach for
// UpdateProduct: movements go through the ledger, administrative corrections
// through AdjustQuantity, which records a reconciling adjustment movement.
type ProductService interface {
	CreateProduct(req *CreateProductRequest, actorID string) (*model.Product, error)
	GetProduct(id uuid.UUID) (*model.Product, error)
	UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID string) (*model.Product, error)
	AdjustQuantity(id uuid.UUID, req *AdjustQuantityRequest, actorID string) (*model.Product, error)
	DeleteProduct(id uuid.UUID, actorID string) error
	ListProducts() ([]model.Product, error)
}

type CreateProductRequest struct {
	SKU         string    `json:"sku" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"gte=0"`
	CostPrice   float64   `json:"cost_price" validate:"gte=0"`
	Quantity    int       `json:"quantity" validate:"gte=0"`
	MinQuantity int       `json:"min_quantity" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"uuid_required"`
	Image       string    `json:"image"`
}

type UpdateProductRequest struct {
	SKU         string    `json:"sku" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	Description string    `json:"description"`
	Price       float64   `json:"price" validate:"gte=0"`
	CostPrice   float64   `json:"cost_price" validate:"gte=0"`
	MinQuantity int       `json:"min_quantity" validate:"gte=0"`
	CategoryID  uuid.UUID `json:"category_id" validate:"uuid_required"`
	Image       string    `json:"image"`
}

type AdjustQuantityRequest struct {
	NewQuantity int    `json:"new_quantity" validate:"gte=0"`
	Reason      string `json:"reason"`
}

type productService struct {
	productRepo  repository.ProductRepository
	movementRepo repository.MovementRepository
	db           *gorm.DB
	wsHub        *ws.Hub
}

func NewProductService(productRepo repository.ProductRepository, movementRepo repository.MovementRepository, db *gorm.DB, hub *ws.Hub) ProductService {
	return &productService{
		productRepo:  productRepo,
		movementRepo: movementRepo,
		db:           db,
		wsHub:        hub,
	}
}

// CreateProduct inserts the product and, when the initial quantity is nonzero,
// an opening-balance IN movement in the same transaction. Stock is therefore
// always reconcilable from movement history alone.
func (s *productService) CreateProduct(req *CreateProductRequest, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	if existing, err := s.productRepo.FindBySKU(req.SKU); err == nil && existing.ID != uuid.Nil {
		return nil, apperr.DuplicateKey("sku", req.SKU)
	}

	product := &model.Product{
		SKU:         req.SKU,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		Quantity:    req.Quantity,
		MinQuantity: req.MinQuantity,
		CategoryID:  req.CategoryID,
		Image:       req.Image,
	}
	product.CreatedBy = actorID
	product.UpdatedBy = actorID

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			return notFoundOr(err, "category", req.CategoryID)
		}

		if err := s.productRepo.Create(tx, product); err != nil {
			return err
		}

		if req.Quantity > 0 {
			opening := &model.StockMovement{
				ProductID:       product.ID,
				Quantity:        req.Quantity,
				Direction:       model.MovementIn,
				UnitPrice:       req.CostPrice,
				TotalAmount:     float64(req.Quantity) * req.CostPrice,
				ReferenceNumber: model.RefOpeningBalance,
				Notes:           "opening balance at product creation",
				OccurredAt:      time.Now(),
			}
			opening.CreatedBy = actorID
			opening.UpdatedBy = actorID
			if err := s.movementRepo.Create(tx, opening); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify(ws.StockEvent{
		Action: ws.ActionProductCreated,
		Actor:  actorID,
		Payload: map[string]interface{}{
			"id":       product.ID,
			"sku":      product.SKU,
			"name":     product.Name,
			"quantity": product.Quantity,
		},
		Message: fmt.Sprintf("product '%s' created", product.Name),
	})

	return product, nil
}

func (s *productService) GetProduct(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, notFoundOr(err, "product", id)
	}
	return product, nil
}

// UpdateProduct edits master fields only. Quantity deliberately stays out of
// the update map so a stale form submit cannot desynchronize it from history.
func (s *productService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}

		if req.SKU != product.SKU {
			var existing model.Product
			if err := tx.First(&existing, "sku = ?", req.SKU).Error; err == nil && existing.ID != product.ID {
				return apperr.DuplicateKey("sku", req.SKU)
			}
		}

		var category model.Category
		if err := tx.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			return notFoundOr(err, "category", req.CategoryID)
		}

		return tx.Model(&product).Updates(map[string]interface{}{
			"sku":          req.SKU,
			"name":         req.Name,
			"description":  req.Description,
			"price":        req.Price,
			"cost_price":   req.CostPrice,
			"min_quantity": req.MinQuantity,
			"category_id":  req.CategoryID,
			"image":        req.Image,
			"updated_by":   actorID,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify(ws.StockEvent{
		Action: ws.ActionProductUpdated,
		Actor:  actorID,
		Payload: map[string]interface{}{
			"id":  product.ID,
			"sku": product.SKU,
		},
		Message: fmt.Sprintf("product '%s' updated", product.Name),
	})

	return &product, nil
}

// AdjustQuantity is the administrative correction path. The overwrite is
// guarded on the observed quantity and commits together with an ADJUSTMENT
// movement covering the delta, keeping the reconciliation invariant intact.
func (s *productService) AdjustQuantity(id uuid.UUID, req *AdjustQuantityRequest, actorID string) (*model.Product, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}

		delta := req.NewQuantity - product.Quantity
		if delta == 0 {
			return nil
		}

		rows, err := s.productRepo.SetQuantity(tx, product.ID, product.Quantity, req.NewQuantity, actorID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return apperr.Validation("stock for product '%s' changed concurrently, retry the adjustment", product.Name)
		}

		direction := model.MovementIn
		quantity := delta
		if delta < 0 {
			direction = model.MovementOut
			quantity = -delta
		}

		adjustment := &model.StockMovement{
			ProductID:       product.ID,
			Quantity:        quantity,
			Direction:       direction,
			UnitPrice:       0,
			TotalAmount:     0,
			ReferenceNumber: model.RefAdjustment,
			Notes:           req.Reason,
			OccurredAt:      time.Now(),
		}
		adjustment.CreatedBy = actorID
		adjustment.UpdatedBy = actorID
		if err := s.movementRepo.Create(tx, adjustment); err != nil {
			return err
		}

		product.Quantity = req.NewQuantity
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.wsHub.Notify(ws.StockEvent{
		Action: ws.ActionStockAdjusted,
		Actor:  actorID,
		Payload: map[string]interface{}{
			"id":        product.ID,
			"sku":       product.SKU,
			"new_stock": product.Quantity,
		},
		Message: fmt.Sprintf("stock of '%s' set to %d", product.Name, product.Quantity),
	})

	return &product, nil
}

// DeleteProduct refuses to remove a product that movements still reference:
// deleting it would orphan the audit trail behind those movements.
func (s *productService) DeleteProduct(id uuid.UUID, actorID string) error {
	var product model.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "product", id)
		}

		count, err := s.productRepo.CountMovements(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: product '%s' has %d movement(s)", apperr.ErrReferentialIntegrity, product.Name, count)
		}

		return tx.Delete(&product).Error
	})
	if err != nil {
		return err
	}

	s.wsHub.Notify(ws.StockEvent{
		Action:  ws.ActionProductDeleted,
		Actor:   actorID,
		Payload: map[string]interface{}{"id": product.ID, "sku": product.SKU},
		Message: fmt.Sprintf("product '%s' deleted", product.Name),
	})
	return nil
}

func (s *productService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}
