package server

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"menuboard/internal/cache"
	"menuboard/internal/middleware"
	"menuboard/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "menuboard-api"
	tokenAudience = "menuboard-client"
)

// sessionClaims is the payload of an admin session token. Subject is the
// account id; Username is the restaurant identifier scoping every admin call.
type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func unauthorized(message string) *models.AppError {
	return models.NewUnauthorizedError(message)
}

// issueToken signs a session for account valid for SESSION_TTL_HOURS.
func (s *Server) issueToken(account *models.Account) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}
	ttl := time.Duration(s.config.SessionTTLHours) * time.Hour
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	now := time.Now()
	claims := sessionClaims{
		Username: account.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   account.ID,
			Issuer:    tokenIssuer,
			Audience:  jwt.ClaimStrings{tokenAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

// parseSession verifies an HS256 token and its issuer, audience and subject.
func (s *Server) parseSession(raw string) (*sessionClaims, *models.AppError) {
	claims := &sessionClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, unauthorized("Invalid or expired token")
	}

	switch {
	case claims.Issuer != tokenIssuer:
		return nil, unauthorized("Invalid token issuer")
	case !slices.Contains(claims.Audience, tokenAudience):
		return nil, unauthorized("Invalid token audience")
	case claims.Subject == "" || claims.Username == "":
		return nil, unauthorized("Invalid subject claim")
	}
	return claims, nil
}

// AuthRequired authenticates admin routes with a bearer session token. It
// stores accountID, restaurantID, jti and tokenExp in Locals and tags the
// request context for logging.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, ok := strings.CutPrefix(c.Get(fiber.HeaderAuthorization), "Bearer ")
		raw = strings.TrimSpace(raw)
		if !ok || raw == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized, errAuthRequired)
		}

		claims, appErr := s.parseSession(raw)
		if appErr != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized, appErr)
		}
		if cache.IsTokenRevoked(c.UserContext(), claims.ID) {
			return models.RespondWithError(c, fiber.StatusUnauthorized, unauthorized("Token has been revoked"))
		}

		c.Locals("accountID", claims.Subject)
		c.Locals("restaurantID", claims.Username)
		c.Locals("jti", claims.ID)
		c.Locals("tokenExp", claims.ExpiresAt.Time)

		ctx := middleware.WithAccountID(c.UserContext(), claims.Subject)
		c.SetUserContext(middleware.WithRestaurantID(ctx, claims.Username))
		return c.Next()
	}
}
