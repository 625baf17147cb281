package service

import (
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCategory_RequiresName(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateCategory(&CreateCategoryRequest{Description: "no name"}, "tester")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteCategory_WithProductsRejected(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-CAT", 1)

	err := f.catalog.DeleteCategory(product.CategoryID)
	require.ErrorIs(t, err, apperr.ErrReferentialIntegrity)

	// The category still exists.
	var category model.Category
	assert.NoError(t, f.db.First(&category, "id = ?", product.CategoryID).Error)
}

func TestDeleteCategory_Empty(t *testing.T) {
	f := newFixture(t)
	category := f.createCategory(t, "transient")

	require.NoError(t, f.catalog.DeleteCategory(category.ID))

	categories, err := f.catalog.ListCategories()
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestDeleteCategory_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.catalog.DeleteCategory(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateSupplier_ContactFieldsStored(t *testing.T) {
	f := newFixture(t)

	supplier, err := f.catalog.CreateSupplier(&CreateSupplierRequest{
		Name:          "Acme Wholesale",
		ContactPerson: "Jordan Vale",
		Email:         "sales@acme.test",
		Phone:         "+1-555-0100",
		Address:       "1 Warehouse Way",
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, "Jordan Vale", supplier.ContactPerson)
	assert.Equal(t, "tester", supplier.CreatedBy)
}

func TestCreateSupplier_InvalidEmailRejected(t *testing.T) {
	f := newFixture(t)

	_, err := f.catalog.CreateSupplier(&CreateSupplierRequest{
		Name:  "Bad Mail Co",
		Email: "not-an-email",
	}, "tester")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestDeleteSupplier_NoMovements(t *testing.T) {
	f := newFixture(t)
	supplier := f.createSupplier(t, "Transient Trading")

	require.NoError(t, f.catalog.DeleteSupplier(supplier.ID))

	var found model.Supplier
	err := f.db.First(&found, "id = ?", supplier.ID).Error
	assert.Error(t, err) // no longer retrievable
}

func TestDeleteSupplier_WithMovementsRejected(t *testing.T) {
	f := newFixture(t)
	supplier := f.createSupplier(t, "Sticky Supplies")
	product := f.createProduct(t, "SKU-SUPGUARD", 0)

	_, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID:  product.ID,
		SupplierID: &supplier.ID,
		Quantity:   3,
		Direction:  model.MovementIn,
		UnitPrice:  1,
	}, "tester")
	require.NoError(t, err)

	err = f.catalog.DeleteSupplier(supplier.ID)
	require.ErrorIs(t, err, apperr.ErrReferentialIntegrity)

	suppliers, err := f.catalog.ListSuppliers()
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)
}

func TestDeleteSupplier_NotFound(t *testing.T) {
	f := newFixture(t)
	err := f.catalog.DeleteSupplier(uuid.New())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
