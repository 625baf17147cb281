package service

import (
	"sync"
	"testing"

	"go-stock-ledger/internal/model"
	"go-stock-ledger/pkg/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordMovement_InboundIncreasesStock(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-IN", 10)

	movement, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID: product.ID,
		Quantity:  5,
		Direction: model.MovementIn,
		UnitPrice: 2.0,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, 15, f.productQuantity(t, "SKU-IN"))
	assert.Equal(t, 10.0, movement.TotalAmount)
	assert.Equal(t, model.MovementIn, movement.Direction)
	assert.NotEqual(t, uuid.Nil, movement.ID)
}

func TestRecordMovement_OutboundDecreasesStock(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-OUT", 10)

	movement, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID: product.ID,
		Quantity:  4,
		Direction: model.MovementOut,
		UnitPrice: 6.0,
	}, "tester")
	require.NoError(t, err)

	assert.Equal(t, 6, f.productQuantity(t, "SKU-OUT"))
	assert.Equal(t, 24.0, movement.TotalAmount)
}

func TestRecordMovement_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-SHORT", 10)
	before := f.movementCount(t)

	_, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID: product.ID,
		Quantity:  15,
		Direction: model.MovementOut,
		UnitPrice: 1.0,
	}, "tester")
	require.ErrorIs(t, err, apperr.ErrInsufficientStock)

	// No partial application: quantity and movement table untouched.
	assert.Equal(t, 10, f.productQuantity(t, "SKU-SHORT"))
	assert.Equal(t, before, f.movementCount(t))
}

func TestRecordMovement_ValidationRejectedBeforeStore(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-VAL", 10)
	before := f.movementCount(t)

	cases := []struct {
		name string
		req  MovementRequest
	}{
		{"zero quantity", MovementRequest{ProductID: product.ID, Quantity: 0, Direction: model.MovementIn}},
		{"negative quantity", MovementRequest{ProductID: product.ID, Quantity: -3, Direction: model.MovementIn}},
		{"unknown direction", MovementRequest{ProductID: product.ID, Quantity: 1, Direction: "SIDEWAYS"}},
		{"negative unit price", MovementRequest{ProductID: product.ID, Quantity: 1, Direction: model.MovementIn, UnitPrice: -0.5}},
		{"missing product id", MovementRequest{Quantity: 1, Direction: model.MovementIn}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.ledger.RecordMovement(&tc.req, "tester")
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}

	assert.Equal(t, 10, f.productQuantity(t, "SKU-VAL"))
	assert.Equal(t, before, f.movementCount(t))
}

func TestRecordMovement_ProductNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID: uuid.New(),
		Quantity:  1,
		Direction: model.MovementIn,
	}, "tester")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestRecordMovement_SupplierNotFound(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-NOSUP", 10)
	missing := uuid.New()
	before := f.movementCount(t)

	_, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID:  product.ID,
		SupplierID: &missing,
		Quantity:   5,
		Direction:  model.MovementIn,
	}, "tester")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	assert.Equal(t, 10, f.productQuantity(t, "SKU-NOSUP"))
	assert.Equal(t, before, f.movementCount(t))
}

func TestRecordMovement_SupplierRecorded(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-SUP", 0)
	supplier := f.createSupplier(t, "Acme Wholesale")

	movement, err := f.ledger.RecordMovement(&MovementRequest{
		ProductID:       product.ID,
		SupplierID:      &supplier.ID,
		Quantity:        20,
		Direction:       model.MovementIn,
		UnitPrice:       1.25,
		ReferenceNumber: "PO-1001",
	}, "tester")
	require.NoError(t, err)

	require.NotNil(t, movement.SupplierID)
	assert.Equal(t, supplier.ID, *movement.SupplierID)
	assert.Equal(t, "PO-1001", movement.ReferenceNumber)
	assert.Equal(t, 20, f.productQuantity(t, "SKU-SUP"))
}

// Quantity must always equal the net of all committed movements, with the
// opening balance folded in as its own recorded movement.
func TestRecordMovement_LedgerReconciliation(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-RECON", 10)

	steps := []MovementRequest{
		{ProductID: product.ID, Quantity: 5, Direction: model.MovementIn, UnitPrice: 2},
		{ProductID: product.ID, Quantity: 3, Direction: model.MovementOut, UnitPrice: 4},
		{ProductID: product.ID, Quantity: 7, Direction: model.MovementIn, UnitPrice: 2},
		{ProductID: product.ID, Quantity: 9, Direction: model.MovementOut, UnitPrice: 4},
	}
	for i := range steps {
		_, err := f.ledger.RecordMovement(&steps[i], "tester")
		require.NoError(t, err)
	}

	movements, err := f.movementRepo.FindByProduct(product.ID)
	require.NoError(t, err)

	net := 0
	for _, m := range movements {
		net += m.Delta()
	}
	assert.Equal(t, net, f.productQuantity(t, "SKU-RECON"))
	assert.Equal(t, 10, f.productQuantity(t, "SKU-RECON"))
	// 5 movements: opening balance plus the four above.
	assert.Len(t, movements, 5)
}

// Two concurrent issues that together exceed on-hand stock: exactly one may
// succeed and stock must never go negative.
func TestRecordMovement_ConcurrentIssues(t *testing.T) {
	f := newFixture(t)
	product := f.createProduct(t, "SKU-RACE", 10)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.ledger.RecordMovement(&MovementRequest{
				ProductID: product.ID,
				Quantity:  8,
				Direction: model.MovementOut,
				UnitPrice: 1,
			}, "tester")
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 2, f.productQuantity(t, "SKU-RACE"))
}
