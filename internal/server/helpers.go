package server

import (
	"bytes"
	"log/slog"

	"menuboard/internal/middleware"
	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	errAuthRequired   = models.NewUnauthorizedError("Authentication Required")
	errInvalidRequest = models.NewValidationError("Invalid request body")
)

// bindJSON decodes the request body with the app's JSON decoder. An empty body
// leaves v untouched so required-field checks report the missing fields.
func bindJSON(c *fiber.Ctx, v any) error {
	body := bytes.TrimSpace(c.Body())
	if len(body) == 0 {
		return nil
	}
	if err := c.App().Config().JSONDecoder(body, v); err != nil {
		return errInvalidRequest
	}
	return nil
}

// sessionRestaurantID returns the restaurant of the authenticated account.
func sessionRestaurantID(c *fiber.Ctx) (string, error) {
	rid, ok := c.Locals("restaurantID").(string)
	if !ok || rid == "" {
		return "", errAuthRequired
	}
	return rid, nil
}

// respondError writes err as an envelope. Unexpected errors are logged.
func respondError(c *fiber.Ctx, err error) error {
	status := models.HTTPStatus(err)
	if status >= fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
	}
	return models.RespondWithError(c, status, err)
}
