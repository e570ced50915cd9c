package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"menuboard/internal/events"
	"menuboard/internal/featureflags"
	"menuboard/internal/models"
	"menuboard/internal/observability"
	"menuboard/internal/repository"
	"menuboard/internal/storefront"
)

type OrderService struct {
	orderRepo   repository.OrderRepository
	menuRepo    repository.MenuRepository
	profileRepo repository.ProfileRepository
	tableRepo   repository.TableRepository
	publisher   events.OrderPublisher
	flags       *featureflags.Manager
}

type CheckoutLine struct {
	ProductID string
	Quantity  int
}

type CheckoutInput struct {
	RestaurantID  string
	Table         string
	CustomerName  string
	CustomerPhone string
	Lines         []CheckoutLine
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	menuRepo repository.MenuRepository,
	profileRepo repository.ProfileRepository,
	tableRepo repository.TableRepository,
	publisher events.OrderPublisher,
	flags *featureflags.Manager,
) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{
		orderRepo:   orderRepo,
		menuRepo:    menuRepo,
		profileRepo: profileRepo,
		tableRepo:   tableRepo,
		publisher:   publisher,
		flags:       flags,
	}
}

// Checkout validates the cart against the live menu and stores the order.
func (s *OrderService) Checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	ctx, span := observability.StartSpan(ctx, "order.checkout", in.RestaurantID,
		observability.AttrTable.String(strings.TrimSpace(in.Table)))
	defer span.End()

	order, err := s.checkout(ctx, in)
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	span.SetAttributes(observability.AttrOrderID.String(order.ID))
	return order, nil
}

func (s *OrderService) checkout(ctx context.Context, in CheckoutInput) (*models.Order, error) {
	table := strings.TrimSpace(in.Table)
	name := strings.TrimSpace(in.CustomerName)
	if table == "" {
		return nil, models.NewValidationError("table is required")
	}
	if name == "" {
		return nil, models.NewValidationError("Customer name is required")
	}
	if len(in.Lines) == 0 {
		return nil, models.NewValidationError("At least one product is required")
	}

	cart := storefront.Cart{}
	for _, l := range in.Lines {
		if strings.TrimSpace(l.ProductID) == "" {
			return nil, models.NewValidationError("Product ID is required")
		}
		if l.Quantity < 1 {
			return nil, models.NewValidationError("Quantity must be at least 1")
		}
		cart = cart.Add(strings.TrimSpace(l.ProductID), l.Quantity)
	}

	if _, err := s.profileRepo.GetByRestaurantID(ctx, in.RestaurantID); err != nil {
		if models.IsCode(err, models.CodeNotFound) {
			return nil, models.NewNotFoundMessage("Restaurant not found")
		}
		return nil, err
	}
	if _, err := s.tableRepo.GetByUsername(ctx, in.RestaurantID, table); err != nil {
		return nil, err
	}

	lines := cart.Lines()
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ID)
	}
	items, err := s.menuRepo.GetByIDs(ctx, in.RestaurantID, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.MenuItem, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}

	order := &models.Order{
		RestaurantID: in.RestaurantID,
		Customer:     &models.Customer{Name: name, Phone: strings.TrimSpace(in.CustomerPhone)},
		Table:        table,
		Products:     make([]models.OrderProduct, 0, len(lines)),
	}
	for _, l := range lines {
		item, ok := byID[l.ID]
		if !ok || item.Hidden {
			return nil, models.NewValidationError(fmt.Sprintf("Product %s is not available", l.ID))
		}
		lineTotal := item.Price * float64(l.Quantity)
		order.Subtotal += lineTotal
		order.Tax += lineTotal * item.TaxPercent / 100
		order.Products = append(order.Products, models.OrderProduct{
			ProductID: item.ID,
			Quantity:  l.Quantity,
			UnitPrice: item.Price,
		})
	}
	order.Subtotal = roundCents(order.Subtotal)
	order.Tax = roundCents(order.Tax)
	order.Total = roundCents(order.Subtotal + order.Tax)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	for i := range order.Products {
		order.Products[i].Product = byID[order.Products[i].ProductID]
	}
	observability.OrdersCreated.Inc()

	if s.flags.EnabledFor(featureflags.OrderEvents, in.RestaurantID) {
		if err := s.publisher.PublishOrderCreated(ctx, order); err != nil {
			observability.EventPublishFailures.Inc()
			observability.Logger.WarnContext(ctx, "order event not published",
				slog.String("order_id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return order, nil
}

// ListOrders returns a restaurant's orders newest first.
func (s *OrderService) ListOrders(ctx context.Context, restaurantID string) ([]models.Order, error) {
	if strings.TrimSpace(restaurantID) == "" {
		return nil, models.NewValidationError("restaurantID is required")
	}
	return s.orderRepo.ListByRestaurant(ctx, restaurantID)
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
