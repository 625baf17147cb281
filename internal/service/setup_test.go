package service

import (
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an in-memory SQLite database. A single connection keeps
// SQLite's writer serialization aligned with the guarded-UPDATE semantics the
// services rely on.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.StockMovement{},
		&model.User{},
	))

	return db
}

// fixture wires all services over one test database. The websocket hub is nil
// on purpose: Notify is a no-op without a feed.
type fixture struct {
	db       *gorm.DB
	catalog  CatalogService
	products ProductService
	ledger   LedgerService
	reports  ReportService
	auth     AuthService

	movementRepo repository.MovementRepository
	userRepo     repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupTestDB(t)

	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	movementRepo := repository.NewMovementRepo(db)
	userRepo := repository.NewUserRepo(db)

	return &fixture{
		db:           db,
		catalog:      NewCatalogService(categoryRepo, supplierRepo, db),
		products:     NewProductService(productRepo, movementRepo, db, nil),
		ledger:       NewLedgerService(productRepo, movementRepo, db, nil),
		reports:      NewReportService(productRepo, movementRepo),
		auth:         NewAuthService(userRepo),
		movementRepo: movementRepo,
		userRepo:     userRepo,
	}
}

func (f *fixture) createCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := f.catalog.CreateCategory(&CreateCategoryRequest{Name: name}, "tester")
	require.NoError(t, err)
	return category
}

func (f *fixture) createSupplier(t *testing.T, name string) *model.Supplier {
	t.Helper()
	supplier, err := f.catalog.CreateSupplier(&CreateSupplierRequest{Name: name}, "tester")
	require.NoError(t, err)
	return supplier
}

func (f *fixture) createProduct(t *testing.T, sku string, quantity int) *model.Product {
	t.Helper()
	category := f.createCategory(t, "cat-"+sku)
	product, err := f.products.CreateProduct(&CreateProductRequest{
		SKU:         sku,
		Name:        "product " + sku,
		Price:       5,
		CostPrice:   2.5,
		Quantity:    quantity,
		MinQuantity: 1,
		CategoryID:  category.ID,
	}, "tester")
	require.NoError(t, err)
	return product
}

func (f *fixture) productQuantity(t *testing.T, sku string) int {
	t.Helper()
	var product model.Product
	require.NoError(t, f.db.First(&product, "sku = ?", sku).Error)
	return product.Quantity
}

func (f *fixture) movementCount(t *testing.T) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&model.StockMovement{}).Count(&count).Error)
	return count
}
