package product

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*Product
	changes  []*StockChange
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]*Product{}}
}

func (f *fakeProductRepo) Create(ctx context.Context, p *Product, initial *StockChange) error {
	f.products[p.ID] = p
	f.changes = append(f.changes, initial)
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Product, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	p, ok := f.products[pid]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	return p, nil
}

func (f *fakeProductRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) SetActive(ctx context.Context, tenantID uuid.UUID, id string, active bool) error {
	pid, _ := uuid.Parse(id)
	f.products[pid].IsActive = active
	return nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int, changeType ChangeType, reason string) (int, int, error) {
	p := f.products[productID]
	before := p.Stock
	after := before + delta
	if after < 0 {
		return 0, 0, fmt.Errorf("insufficient stock for product %s", p.Name)
	}
	p.Stock = after
	f.changes = append(f.changes, &StockChange{
		ID:             uuid.New(),
		TenantID:       tenantID,
		ProductID:      productID,
		ChangeType:     changeType,
		QuantityChange: delta,
		StockBefore:    before,
		StockAfter:     after,
		Reason:         reason,
	})
	return before, after, nil
}

func (f *fakeProductRepo) ListStockChanges(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]*StockChange, error) {
	return f.changes, nil
}

func TestCreateProductWritesInitialAudit(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{
		Name:  "Cerveza",
		Price: 5.0,
		Stock: 24,
	})
	require.NoError(t, err)
	assert.Equal(t, 24, p.Stock)
	assert.True(t, p.IsActive)

	require.Len(t, repo.changes, 1)
	initial := repo.changes[0]
	assert.Equal(t, ChangeInitial, initial.ChangeType)
	assert.Equal(t, 0, initial.StockBefore)
	assert.Equal(t, 24, initial.StockAfter)
	assert.Equal(t, 24, initial.QuantityChange)
}

func TestCreateProductValidation(t *testing.T) {
	svc := NewService(newFakeProductRepo())
	tenantID := uuid.New()

	_, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Price: 5})
	assert.ErrorContains(t, err, "name is required")

	_, err = svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "X", Price: -1})
	assert.ErrorContains(t, err, "price cannot be negative")

	_, err = svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "X", Stock: -1})
	assert.ErrorContains(t, err, "stock cannot be negative")
}

func TestAdjustStockDelta(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "Refresco", Price: 3, Stock: 10})
	require.NoError(t, err)

	got, err := svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{Delta: 5, Reason: "restock"})
	require.NoError(t, err)
	assert.Equal(t, 15, got.Stock)

	got, err = svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{Delta: -3, Reason: "breakage"})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	require.Len(t, repo.changes, 3)
	assert.Equal(t, ChangeIncrease, repo.changes[1].ChangeType)
	assert.Equal(t, ChangeDecrease, repo.changes[2].ChangeType)
}

func TestAdjustStockAbsolute(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "Botana", Price: 2, Stock: 10})
	require.NoError(t, err)

	target := 7
	got, err := svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{NewStock: &target, Reason: "recount"})
	require.NoError(t, err)
	assert.Equal(t, 7, got.Stock)

	last := repo.changes[len(repo.changes)-1]
	assert.Equal(t, ChangeAdjustment, last.ChangeType)
	assert.Equal(t, -3, last.QuantityChange)
}

func TestAdjustStockNoop(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "Agua", Price: 1, Stock: 10})
	require.NoError(t, err)

	// Setting the stock to its current level writes no audit row.
	target := 10
	_, err = svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{NewStock: &target})
	require.NoError(t, err)
	assert.Len(t, repo.changes, 1)
}

func TestAdjustStockBelowZero(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "Cerveza", Price: 5, Stock: 2})
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{Delta: -5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
	assert.Equal(t, 2, repo.products[p.ID].Stock, "a failed adjustment must not mutate stock")
}

func TestAuditInvariant(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewService(repo)
	tenantID := uuid.New()

	p, err := svc.CreateProduct(context.Background(), tenantID, CreateProductRequest{Name: "Cerveza", Price: 5, Stock: 12})
	require.NoError(t, err)

	_, err = svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{Delta: 6})
	require.NoError(t, err)
	target := 3
	_, err = svc.AdjustStock(context.Background(), tenantID, p.ID.String(), AdjustStockRequest{NewStock: &target})
	require.NoError(t, err)

	for _, c := range repo.changes {
		assert.Equal(t, c.StockAfter, c.StockBefore+c.QuantityChange,
			"every audit row must satisfy stock_after = stock_before + quantity_change")
	}
}
