package service

import (
	"fmt"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"
	"go-stock-ledger/pkg/apperr"
	"go-stock-ledger/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogService manages the Category and Supplier master records. These are
// pure reference data; the only rule worth enforcing is the deletion guard.
type CatalogService interface {
	CreateCategory(req *CreateCategoryRequest, actorID string) (*model.Category, error)
	ListCategories() ([]model.Category, error)
	DeleteCategory(id uuid.UUID) error
	CreateSupplier(req *CreateSupplierRequest, actorID string) (*model.Supplier, error)
	ListSuppliers() ([]model.Supplier, error)
	DeleteSupplier(id uuid.UUID) error
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type CreateSupplierRequest struct {
	Name          string `json:"name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
}

type catalogService struct {
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	db           *gorm.DB
}

func NewCatalogService(categoryRepo repository.CategoryRepository, supplierRepo repository.SupplierRepository, db *gorm.DB) CatalogService {
	return &catalogService{
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		db:           db,
	}
}

func (s *catalogService) CreateCategory(req *CreateCategoryRequest, actorID string) (*model.Category, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	category.CreatedBy = actorID
	category.UpdatedBy = actorID

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

// DeleteCategory removes a category unless products still reference it. The
// guard count and the delete run in one transaction so a concurrent product
// insert cannot slip between check and delete.
func (s *catalogService) DeleteCategory(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var category model.Category
		if err := tx.First(&category, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "category", id)
		}

		count, err := s.categoryRepo.CountProducts(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: category '%s' has %d product(s)", apperr.ErrReferentialIntegrity, category.Name, count)
		}

		return tx.Delete(&category).Error
	})
}

func (s *catalogService) CreateSupplier(req *CreateSupplierRequest, actorID string) (*model.Supplier, error) {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	supplier := &model.Supplier{
		Name:          req.Name,
		ContactPerson: req.ContactPerson,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
	}
	supplier.CreatedBy = actorID
	supplier.UpdatedBy = actorID

	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

func (s *catalogService) ListSuppliers() ([]model.Supplier, error) {
	return s.supplierRepo.FindAll()
}

// DeleteSupplier removes a supplier unless movements still reference it.
// Movement history is the audit trail, so the supplier side of it must never
// be orphaned.
func (s *catalogService) DeleteSupplier(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var supplier model.Supplier
		if err := tx.First(&supplier, "id = ?", id).Error; err != nil {
			return notFoundOr(err, "supplier", id)
		}

		count, err := s.supplierRepo.CountMovements(tx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: supplier '%s' has %d movement(s)", apperr.ErrReferentialIntegrity, supplier.Name, count)
		}

		return tx.Delete(&supplier).Error
	})
}
