package server

import (
	"time"

	"menuboard/internal/cache"
	"menuboard/internal/models"
	"menuboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

type registerRequest struct {
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Password       string      `json:"password"`
	RestaurantName string      `json:"restaurantName"`
	Description    string      `json:"description"`
	Address        string      `json:"address"`
	ThemeColor     *models.HSL `json:"themeColor"`
}

// Register handles POST /api/register
// @Summary Register a restaurant
// @Description Create an owner account together with its restaurant profile
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Registration request"
// @Success 200 {object} object{success=bool,message=string,account=models.Account,profile=models.Profile}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /register [post]
func (s *Server) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	account, profile, err := s.accountService.Register(c.UserContext(), service.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		RestaurantName: req.RestaurantName,
		Description:    req.Description,
		Address:        req.Address,
		ThemeColor:     req.ThemeColor,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Account created successfully",
		"account": account,
		"profile": profile,
	})
}

// Login handles POST /api/auth/login
// @Summary Owner login
// @Description Authenticate by username or email and return a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string} true "Login credentials"
// @Success 200 {object} object{status=int,token=string,account=models.Account}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, err)
	}

	account, err := s.accountService.Authenticate(c.UserContext(), service.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondError(c, err)
	}

	token, err := s.issueToken(account)
	if err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"token":   token,
		"account": account,
	})
}

// Logout handles POST /api/auth/logout
// @Summary Owner logout
// @Description Revoke the current session token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{status=int,message=string}
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	jti, _ := c.Locals("jti").(string)
	ttl := 24 * time.Hour
	if exp, ok := c.Locals("tokenExp").(time.Time); ok {
		ttl = time.Until(exp)
	}

	if err := cache.RevokeToken(c.UserContext(), jti, ttl); err != nil {
		return respondError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"status":  fiber.StatusOK,
		"message": "Logged out successfully",
	})
}
