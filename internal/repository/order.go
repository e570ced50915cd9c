package repository

import (
	"context"
	"log/slog"

	"menuboard/internal/models"
	"menuboard/internal/observability"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderRepository defines persistence operations for orders and their customers.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error)
}

type orderRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewOrderRepository returns a new OrderRepository implementation.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db, log: observability.NewRepoLogger("orders")}
}

// Create stores the customer, the order and its lines in one transaction.
func (r *orderRepository) Create(ctx context.Context, order *models.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if order.Customer != nil {
			if err := tx.Create(order.Customer).Error; err != nil {
				return err
			}
			order.CustomerID = order.Customer.ID
		}
		if err := tx.Omit(clause.Associations).Create(order).Error; err != nil {
			return err
		}
		if len(order.Products) == 0 {
			return nil
		}
		for i := range order.Products {
			order.Products[i].OrderID = order.ID
			order.Products[i].ProductID = productID(order.Products[i])
		}
		return tx.Omit(clause.Associations).Create(&order.Products).Error
	})
	if err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx,
		slog.String("order_id", order.ID),
		slog.String("restaurant_id", order.RestaurantID),
		slog.Int("lines", len(order.Products)),
	)
	return nil
}

// ListByRestaurant returns orders newest first with customer and product details.
func (r *orderRepository) ListByRestaurant(ctx context.Context, restaurantID string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Products").
		Preload("Products.Product").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return orders, nil
}

func productID(line models.OrderProduct) string {
	if line.ProductID == "" && line.Product != nil {
		return line.Product.ID
	}
	return line.ProductID
}
