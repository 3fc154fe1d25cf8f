package sale

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfarroc/billarpro-backend/internal/modules/client"
	"github.com/lfarroc/billarpro-backend/internal/modules/product"
	"github.com/lfarroc/billarpro-backend/internal/modules/rental"
)

type fakeSaleRepo struct {
	createErr error
	created   *Sale
}

func (f *fakeSaleRepo) CreateWithStock(ctx context.Context, s *Sale) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = s
	return nil
}

func (f *fakeSaleRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*Sale, error) {
	if f.created == nil {
		return nil, errors.New("sale not found")
	}
	return f.created, nil
}

func (f *fakeSaleRepo) SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error {
	f.created.IsPaid = paid
	return nil
}

func (f *fakeSaleRepo) ListBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) ListByRental(ctx context.Context, tenantID, rentalID uuid.UUID) ([]*Sale, error) {
	return nil, nil
}

func (f *fakeSaleRepo) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID, unpaidOnly bool) ([]*Sale, error) {
	return nil, nil
}

type fakeProductRepo struct {
	product *product.Product
}

func (f *fakeProductRepo) Create(ctx context.Context, p *product.Product, initial *product.StockChange) error {
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*product.Product, error) {
	if f.product == nil {
		return nil, errors.New("no rows in result set")
	}
	return f.product, nil
}

func (f *fakeProductRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]*product.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *product.Product) error { return nil }

func (f *fakeProductRepo) SetActive(ctx context.Context, tenantID uuid.UUID, id string, active bool) error {
	return nil
}

func (f *fakeProductRepo) AdjustStock(ctx context.Context, tenantID, productID uuid.UUID, delta int, changeType product.ChangeType, reason string) (int, int, error) {
	return 0, 0, nil
}

func (f *fakeProductRepo) ListStockChanges(ctx context.Context, tenantID, productID uuid.UUID, limit int) ([]*product.StockChange, error) {
	return nil, nil
}

type fakeClientRepo struct {
	client *client.Client
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error { return nil }

func (f *fakeClientRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*client.Client, error) {
	if f.client == nil {
		return nil, errors.New("no rows in result set")
	}
	return f.client, nil
}

func (f *fakeClientRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*client.Client, error) {
	return nil, nil
}

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error { return nil }

func (f *fakeClientRepo) GetDebt(ctx context.Context, tenantID, clientID uuid.UUID) (*client.Debt, error) {
	return nil, nil
}

func (f *fakeClientRepo) SettleDebt(ctx context.Context, tenantID, clientID uuid.UUID) error {
	return nil
}

type fakeRentalRepo struct {
	rental *rental.Rental
}

func (f *fakeRentalRepo) StartAndOccupy(ctx context.Context, r *rental.Rental) error { return nil }

func (f *fakeRentalRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*rental.Rental, error) {
	if f.rental == nil || f.rental.ID.String() != id {
		return nil, errors.New("no rows in result set")
	}
	return f.rental, nil
}

func (f *fakeRentalRepo) GetWithRate(ctx context.Context, tenantID uuid.UUID, id string) (*rental.Rental, float64, error) {
	return nil, 0, errors.New("no rows in result set")
}

func (f *fakeRentalRepo) CloseAndRelease(ctx context.Context, tenantID, rentalID uuid.UUID, end time.Time, amount float64, isPaid bool) error {
	return nil
}

func (f *fakeRentalRepo) SetPaid(ctx context.Context, tenantID uuid.UUID, id string, paid bool) error {
	return nil
}

func (f *fakeRentalRepo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*rental.ActiveRental, error) {
	return nil, nil
}

func (f *fakeRentalRepo) ListClosedBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*rental.Rental, error) {
	return nil, nil
}

func boolPtr(v bool) *bool { return &v }

func newTestProduct(tenantID uuid.UUID, price float64, active bool) *product.Product {
	return &product.Product{
		ID:       uuid.New(),
		TenantID: tenantID,
		Name:     "Cerveza",
		Price:    price,
		Stock:    20,
		IsActive: active,
	}
}

func TestCreateSaleFreezesTotal(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 7.5, true)}
	repo := &fakeSaleRepo{}
	svc := NewService(repo, products, &fakeClientRepo{}, &fakeRentalRepo{})

	s, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  3,
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.5, s.UnitPrice, 1e-9)
	assert.InDelta(t, 22.5, s.TotalAmount, 1e-9, "total is frozen from the catalog price at sale time")
	assert.True(t, s.IsPaid, "is_paid defaults to true")
}

func TestCreateSaleFiadoRequiresClient(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	repo := &fakeSaleRepo{}
	svc := NewService(repo, products, &fakeClientRepo{}, &fakeRentalRepo{})

	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  1,
		IsPaid:    boolPtr(false),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a client")
	assert.Nil(t, repo.created)
}

func TestCreateSaleFiadoDenied(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	clients := &fakeClientRepo{client: &client.Client{ID: uuid.New(), TenantID: tenantID, Name: "Juan", PermitirFiado: false}}
	repo := &fakeSaleRepo{}
	svc := NewService(repo, products, clients, &fakeRentalRepo{})

	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  1,
		ClientID:  clients.client.ID.String(),
		IsPaid:    boolPtr(false),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not permit credit")
	assert.Nil(t, repo.created, "a rejected fiado must write nothing")
}

func TestCreateSaleFiadoAllowed(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	clients := &fakeClientRepo{client: &client.Client{ID: uuid.New(), TenantID: tenantID, Name: "Ana", PermitirFiado: true}}
	svc := NewService(&fakeSaleRepo{}, products, clients, &fakeRentalRepo{})

	s, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  2,
		ClientID:  clients.client.ID.String(),
		IsPaid:    boolPtr(false),
	})
	require.NoError(t, err)
	assert.False(t, s.IsPaid)
	require.NotNil(t, s.ClientID)
	assert.Equal(t, clients.client.ID, *s.ClientID)
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	repo := &fakeSaleRepo{createErr: errors.New("insufficient stock for product Cerveza")}
	svc := NewService(repo, products, &fakeClientRepo{}, &fakeRentalRepo{})

	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  50,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient stock")
}

func TestCreateSaleInactiveProduct(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, false)}
	svc := NewService(&fakeSaleRepo{}, products, &fakeClientRepo{}, &fakeRentalRepo{})

	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  1,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")
}

func TestCreateSaleUnknownRental(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	repo := &fakeSaleRepo{}
	svc := NewService(repo, products, &fakeClientRepo{}, &fakeRentalRepo{})

	// Well-formed id, no such rental: rejected before any write.
	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  1,
		RentalID:  uuid.New().String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rental not found")
	assert.Nil(t, repo.created)
}

func TestCreateSaleUnknownClient(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	repo := &fakeSaleRepo{}
	svc := NewService(repo, products, &fakeClientRepo{}, &fakeRentalRepo{})

	// A paid sale with a nonexistent client is rejected too, not just fiados.
	_, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  1,
		ClientID:  uuid.New().String(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "client not found")
	assert.Nil(t, repo.created)
}

func TestCreateSaleLinksRental(t *testing.T) {
	tenantID := uuid.New()
	products := &fakeProductRepo{product: newTestProduct(tenantID, 5.0, true)}
	open := &rental.Rental{ID: uuid.New(), TenantID: tenantID, TableID: uuid.New(), StartTime: time.Now()}
	svc := NewService(&fakeSaleRepo{}, products, &fakeClientRepo{}, &fakeRentalRepo{rental: open})

	s, err := svc.CreateSale(context.Background(), tenantID, uuid.New(), CreateSaleRequest{
		ProductID: products.product.ID.String(),
		Quantity:  2,
		RentalID:  open.ID.String(),
	})
	require.NoError(t, err)
	require.NotNil(t, s.RentalID)
	assert.Equal(t, open.ID, *s.RentalID)
}

func TestCreateSaleValidation(t *testing.T) {
	svc := NewService(&fakeSaleRepo{}, &fakeProductRepo{}, &fakeClientRepo{}, &fakeRentalRepo{})

	_, err := svc.CreateSale(context.Background(), uuid.New(), uuid.New(), CreateSaleRequest{Quantity: 1})
	assert.ErrorContains(t, err, "product_id is required")

	_, err = svc.CreateSale(context.Background(), uuid.New(), uuid.New(), CreateSaleRequest{ProductID: uuid.New().String(), Quantity: 0})
	assert.ErrorContains(t, err, "quantity must be greater than zero")
}
