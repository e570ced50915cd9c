package server

import (
	"encoding/json"

	"menuboard/internal/models"
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

var errCategoriesRequired = models.NewValidationError("Categories array is required")

// ReplaceCategories handles POST /api/admin/categories
// @Summary Replace categories
// @Description Overwrite the caller's category list. Names are trimmed and lowercased.
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{categories=[]string} true "Categories"
// @Success 200 {object} object{status=int,message=string,categories=[]string}
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/categories [post]
func (s *Server) ReplaceCategories(c *fiber.Ctx) error {
	username, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Categories json.RawMessage `json:"categories"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}
	if len(req.Categories) == 0 || req.Categories[0] != '[' {
		return respondError(c, errCategoriesRequired)
	}
	var categories []string
	if err := c.App().Config().JSONDecoder(req.Categories, &categories); err != nil {
		return respondError(c, errCategoriesRequired)
	}

	stored, err := s.profileService.ReplaceCategories(c.UserContext(), username, categories)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":     fiber.StatusOK,
		"message":    "Categories updated successfully",
		"categories": stored,
	})
}

// GetDashboard handles GET /api/admin/profile
// @Summary Admin dashboard
// @Description The caller's profile and every menu item, hidden ones included
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=int,profile=models.Profile,menus=[]models.MenuItem}
// @Failure 404 {object} models.ErrorResponse
// @Router /admin/profile [get]
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	dashboard, err := s.profileService.Dashboard(c.UserContext(), restaurantID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"profile": dashboard.Profile,
		"menus":   dashboard.Menus,
	})
}

// UpdateProfile handles PUT /api/admin/profile
// @Summary Update profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body object{name=string,description=string,address=string,themeColor=models.HSL,avatar=string,cover=string} true "Partial profile"
// @Success 200 {object} object{status=int,message=string,profile=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Router /admin/profile [put]
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	restaurantID, err := sessionRestaurantID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req struct {
		Name        *string     `json:"name"`
		Description *string     `json:"description"`
		Address     *string     `json:"address"`
		ThemeColor  *models.HSL `json:"themeColor"`
		Avatar      *string     `json:"avatar"`
		Cover       *string     `json:"cover"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		ThemeColor:   req.ThemeColor,
		Avatar:       req.Avatar,
		Cover:        req.Cover,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
