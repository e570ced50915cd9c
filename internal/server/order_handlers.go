package server

import (
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type checkoutRequest struct {
	Table    string `json:"table"`
	Customer struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	} `json:"customer"`
	Products []struct {
		Product  string `json:"product"`
		Quantity int    `json:"quantity"`
	} `json:"products"`
}

// Checkout handles POST /api/restaurants/:restaurantID/orders
// @Summary Place an order
// @Description Store the cart of a table as an order
// @Tags restaurants
// @Accept json
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param request body checkoutRequest true "Order"
// @Success 200 {object} object{status=int,message=string,order=models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{restaurantID}/orders [post]
func (s *Server) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	lines := make([]service.CheckoutLine, 0, len(req.Products))
	for _, p := range req.Products {
		lines = append(lines, service.CheckoutLine{ProductID: p.Product, Quantity: p.Quantity})
	}

	order, err := s.orderService.Checkout(c.UserContext(), service.CheckoutInput{
		RestaurantID:  c.Params("restaurantID"),
		Table:         req.Table,
		CustomerName:  req.Customer.Name,
		CustomerPhone: req.Customer.Phone,
		Lines:         lines,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders handles GET /api/admin/orders
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=int,count=int,orders=[]models.Order}
// @Router /admin/orders [get]
func (s *Server) ListOrders(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}
	return s.respondOrders(c, restaurantID)
}

// DebugOrders handles GET /api/debug/orders
// @Summary Debug order listing
// @Description Orders of any restaurant, newest first. Only registered when debug_orders is on.
// @Tags debug
// @Produce json
// @Param restaurantID query string true "Restaurant ID"
// @Success 200 {object} object{status=int,count=int,orders=[]models.Order}
// @Failure 400 {object} models.ErrorResponse
// @Router /debug/orders [get]
func (s *Server) DebugOrders(c *fiber.Ctx) error {
	return s.respondOrders(c, c.Query("restaurantID"))
}

func (s *Server) respondOrders(c *fiber.Ctx, restaurantID string) error {
	orders, err := s.orderService.ListOrders(c.UserContext(), restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": fiber.StatusOK,
		"count":  len(orders),
		"orders": orders,
	})
}
