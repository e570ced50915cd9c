package service

import (
	"context"
	"errors"
	"testing"

	"menuboard/internal/featureflags"
	"menuboard/internal/models"
	"menuboard/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publisherStub struct {
	published []*models.Order
	err       error
}

func (p *publisherStub) PublishOrderCreated(_ context.Context, order *models.Order) error {
	p.published = append(p.published, order)
	return p.err
}

func (p *publisherStub) Close() error { return nil }

func menuWithPrices() *menuRepoStub {
	repo := noopMenuRepo()
	repo.getByIDsFn = func(_ context.Context, _ string, ids []string) ([]models.MenuItem, error) {
		catalog := map[string]models.MenuItem{
			"pizza":    {Document: models.Document{ID: "pizza"}, Name: "Pizza", Price: 20000, TaxPercent: 8},
			"limonada": {Document: models.Document{ID: "limonada"}, Name: "Limonada", Price: 6500},
			"flan":     {Document: models.Document{ID: "flan"}, Name: "Flan", Price: 9000, Hidden: true},
		}
		var out []models.MenuItem
		for _, id := range ids {
			if item, ok := catalog[id]; ok {
				out = append(out, item)
			}
		}
		return out, nil
	}
	return repo
}

func newTestOrderService(orders *orderRepoStub, pub *publisherStub, flags string) *OrderService {
	return NewOrderService(orders, menuWithPrices(), noopProfileRepo(), noopTableRepo(), pub, featureflags.NewManager(flags))
}

func TestOrderService_Checkout(t *testing.T) {
	orders := noopOrderRepo()
	var stored *models.Order
	orders.createFn = func(_ context.Context, o *models.Order) error {
		o.ID = "order-1"
		stored = o
		return nil
	}
	pub := &publisherStub{}
	svc := newTestOrderService(orders, pub, "order_events=on")

	order, err := svc.Checkout(context.Background(), CheckoutInput{
		RestaurantID: "casa-pepe",
		Table:        "4",
		CustomerName: " Ana ",
		Lines: []CheckoutLine{
			{ProductID: "pizza", Quantity: 1},
			{ProductID: "limonada", Quantity: 2},
			{ProductID: "pizza", Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Same(t, stored, order)
	assert.Equal(t, "Ana", order.Customer.Name)
	require.Len(t, order.Products, 2)
	assert.Equal(t, "limonada", order.Products[0].ProductID)
	assert.Equal(t, 2, order.Products[0].Quantity)
	assert.Equal(t, "pizza", order.Products[1].ProductID)
	assert.Equal(t, 2, order.Products[1].Quantity)
	require.NotNil(t, order.Products[1].Product)
	assert.Equal(t, "Pizza", order.Products[1].Product.Name)

	assert.Equal(t, 53000.0, order.Subtotal)
	assert.Equal(t, 3200.0, order.Tax)
	assert.Equal(t, 56200.0, order.Total)

	require.Len(t, pub.published, 1)
	assert.Equal(t, "order-1", pub.published[0].ID)
}

func TestOrderService_Checkout_PublishGatedByFlag(t *testing.T) {
	pub := &publisherStub{}
	svc := newTestOrderService(noopOrderRepo(), pub, "")

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana",
		Lines: []CheckoutLine{{ProductID: "pizza", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Empty(t, pub.published)
}

func TestOrderService_Checkout_PublishFailureDoesNotFail(t *testing.T) {
	pub := &publisherStub{err: errors.New("broker down")}
	svc := newTestOrderService(noopOrderRepo(), pub, "order_events=on")

	order, err := svc.Checkout(context.Background(), CheckoutInput{
		RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana",
		Lines: []CheckoutLine{{ProductID: "pizza", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Len(t, pub.published, 1)
}

func TestOrderService_Checkout_Validation(t *testing.T) {
	svc := newTestOrderService(noopOrderRepo(), &publisherStub{}, "")
	ctx := context.Background()
	line := []CheckoutLine{{ProductID: "pizza", Quantity: 1}}

	inputs := []CheckoutInput{
		{RestaurantID: "casa-pepe", CustomerName: "Ana", Lines: line},
		{RestaurantID: "casa-pepe", Table: "1", Lines: line},
		{RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana"},
		{RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana", Lines: []CheckoutLine{{ProductID: "pizza"}}},
		{RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana", Lines: []CheckoutLine{{Quantity: 1}}},
		{RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana", Lines: []CheckoutLine{{ProductID: "flan", Quantity: 1}}},
		{RestaurantID: "casa-pepe", Table: "1", CustomerName: "Ana", Lines: []CheckoutLine{{ProductID: "ghost", Quantity: 1}}},
	}
	for _, in := range inputs {
		_, err := svc.Checkout(ctx, in)
		assertValidationError(t, err)
	}
}

func TestOrderService_Checkout_UnknownTable(t *testing.T) {
	tables := noopTableRepo()
	tables.getByUsernameFn = func(_ context.Context, _, _ string) (*models.Table, error) {
		return nil, repository.ErrTableNotFound
	}
	orders := noopOrderRepo()
	orders.createFn = func(_ context.Context, _ *models.Order) error {
		t.Fatal("order must not be stored for an unknown table")
		return nil
	}
	svc := NewOrderService(orders, menuWithPrices(), noopProfileRepo(), tables, nil, nil)

	_, err := svc.Checkout(context.Background(), CheckoutInput{
		RestaurantID: "casa-pepe", Table: "99", CustomerName: "Ana",
		Lines: []CheckoutLine{{ProductID: "pizza", Quantity: 1}},
	})
	assertAppError(t, err, models.CodeNotFound)
}

func TestOrderService_ListOrders(t *testing.T) {
	orders := noopOrderRepo()
	orders.listFn = func(_ context.Context, rid string) ([]models.Order, error) {
		return []models.Order{{RestaurantID: rid}}, nil
	}
	svc := newTestOrderService(orders, &publisherStub{}, "")

	got, err := svc.ListOrders(context.Background(), "casa-pepe")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListOrders(context.Background(), "")
	assertValidationError(t, err)
}
