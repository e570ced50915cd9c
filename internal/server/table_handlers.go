package server

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// CreateTables handles POST /api/admin/tables/create
// @Summary Recreate tables
// @Description Replace every table of the restaurant with tables 1..count. count defaults to 10 and must be
// @Description between 1 and 200; 0 is rejected with 400 rather than deleting every table.
// @Tags tables
// @Accept json
// @Produce json
// @Param request body object{restaurantID=string,count=int} true "Restaurant and table count"
// @Success 200 {object} object{status=int,message=string,tables=[]models.Table}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/tables/create [post]
func (s *Server) CreateTables(c *fiber.Ctx) error {
	var req struct {
		RestaurantID string `json:"restaurantID"`
		Count        *int   `json:"count"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	tables, err := s.tableService.Recreate(c.UserContext(), req.RestaurantID, req.Count)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": fmt.Sprintf("%d tables created successfully", len(tables)),
		"tables":  tables,
	})
}

// ListTables handles GET /api/admin/tables
// @Summary List tables
// @Tags tables
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=int,tables=[]models.Table}
// @Router /admin/tables [get]
func (s *Server) ListTables(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	tables, err := s.tableService.ListTables(c.UserContext(), restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": fiber.StatusOK,
		"tables": tables,
	})
}

// GetTableQRCode handles GET /api/admin/tables/:table/qr
// @Summary Table QR code
// @Description PNG QR code encoding the table landing URL
// @Tags tables
// @Produce png
// @Security BearerAuth
// @Param table path string true "Table username"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/tables/{table}/qr [get]
func (s *Server) GetTableQRCode(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	png, err := s.tableService.TableQRCode(c.UserContext(), restaurantID, c.Params("table"))
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
	return c.Send(png)
}

// GetTable handles GET /api/restaurants/:restaurantID/tables/:table
// @Summary Table landing
// @Tags restaurants
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Param table path string true "Table username"
// @Success 200 {object} object{status=int,table=models.Table}
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{restaurantID}/tables/{table} [get]
func (s *Server) GetTable(c *fiber.Ctx) error {
	table, err := s.tableService.GetTable(c.UserContext(), c.Params("restaurantID"), c.Params("table"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": fiber.StatusOK,
		"table":  table,
	})
}
