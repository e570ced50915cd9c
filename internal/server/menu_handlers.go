package server

import (
	"menuboard/internal/models"
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// menuItemRequest is the body of the menu write endpoints. Pointer fields
// distinguish an absent field from an explicit empty value.
type menuItemRequest struct {
	ID          string           `json:"_id"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *float64         `json:"price"`
	TaxPercent  *float64         `json:"taxPercent"`
	FoodType    *models.FoodType `json:"foodType"`
	Veg         *models.Veg      `json:"veg"`
	Image       models.ImageList `json:"image"`
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// CreateMenuItem handles POST /api/admin/menu
// @Summary Create menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body menuItemRequest true "Menu item"
// @Success 200 {object} object{status=int,message=string,data=models.MenuItem}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /admin/menu [post]
func (s *Server) CreateMenuItem(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req menuItemRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := s.menuService.CreateMenuItem(c.UserContext(), service.CreateMenuItemInput{
		RestaurantID: restaurantID,
		Name:         deref(req.Name),
		Description:  deref(req.Description),
		Category:     deref(req.Category),
		Price:        req.Price,
		TaxPercent:   req.TaxPercent,
		FoodType:     deref(req.FoodType),
		Veg:          deref(req.Veg),
		Image:        req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Menu item created successfully",
		"data":    item,
	})
}

// UpdateMenuItem handles PUT /api/admin/menu
// @Summary Update menu item
// @Description Apply the fields present in the body to the caller's item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body menuItemRequest true "Partial menu item with _id"
// @Success 200 {object} object{status=int,message=string,data=models.MenuItem}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu [put]
func (s *Server) UpdateMenuItem(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req menuItemRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	item, err := s.menuService.UpdateMenuItem(c.UserContext(), service.UpdateMenuItemInput{
		RestaurantID: restaurantID,
		ID:           req.ID,
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		Price:        req.Price,
		TaxPercent:   req.TaxPercent,
		FoodType:     req.FoodType,
		Veg:          req.Veg,
		Image:        req.Image,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Menu item updated successfully",
		"data":    item,
	})
}

// DeleteMenuItem handles DELETE /api/admin/menu
// @Summary Delete menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{_id=string} true "Menu item id"
// @Success 200 {object} object{status=int,message=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu [delete]
func (s *Server) DeleteMenuItem(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		ID string `json:"_id"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	if err := s.menuService.DeleteMenuItem(c.UserContext(), restaurantID, req.ID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Menu item deleted successfully",
	})
}

// SetMenuItemHidden handles POST /api/admin/menu/hidden
// @Summary Hide or show a menu item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{itemId=string,hidden=bool} true "Visibility"
// @Success 200 {object} object{status=int,message=string,data=models.MenuItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/menu/hidden [post]
func (s *Server) SetMenuItemHidden(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		ItemID string `json:"itemId"`
		Hidden *bool  `json:"hidden"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if req.Hidden == nil {
		return respondError(c, models.NewValidationError("hidden is required"))
	}

	item, err := s.menuService.SetHidden(c.UserContext(), restaurantID, req.ItemID, *req.Hidden)
	if err != nil {
		return respondError(c, err)
	}

	message := "Menu item is now visible"
	if item.Hidden {
		message = "Menu item is now hidden"
	}
	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": message,
		"data":    item,
	})
}

// ListMenuItems handles GET /api/admin/menu
// @Summary List the caller's menu items
// @Tags menu
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=int,data=[]models.MenuItem}
// @Router /admin/menu [get]
func (s *Server) ListMenuItems(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	items, err := s.menuService.ListMenuItems(c.UserContext(), restaurantID, true)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status": fiber.StatusOK,
		"data":   items,
	})
}

// GetPublicMenu handles GET /api/restaurants/:restaurantID/menu
// @Summary Public menu
// @Description Profile summary and visible items grouped by category
// @Tags restaurants
// @Produce json
// @Param restaurantID path string true "Restaurant ID"
// @Success 200 {object} object{status=int,profile=service.PublicProfile,sections=[]storefront.Section}
// @Failure 404 {object} models.ErrorResponse
// @Router /restaurants/{restaurantID}/menu [get]
func (s *Server) GetPublicMenu(c *fiber.Ctx) error {
	menu, err := s.menuService.PublicMenu(c.UserContext(), c.Params("restaurantID"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":   fiber.StatusOK,
		"profile":  menu.Profile,
		"sections": menu.Sections,
	})
}
