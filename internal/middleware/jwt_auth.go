package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/forgefit/planforge/internal/domain"
)

// Context keys for storing user info
// Using same keys as Firebase middleware for compatibility
const (
	UserIDKey = "userID" // matches firebase_auth.go
	RolesKey  = "roles"
)

// VerifyPlanForgeToken validates the JWT and extracts claims
func VerifyPlanForgeToken(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing authorization token",
			})
		}

		claims, err := parseClaims(authHeader, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RolesKey, claims.Roles)

		return c.Next()
	}
}

// OptionalAuth extracts claims when an Authorization header is present but
// lets anonymous requests through. Used on read endpoints where visibility
// depends on who is asking: anonymous callers see system plans only.
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		claims, err := parseClaims(authHeader, jwtSecret)
		if err != nil {
			// A present-but-bad token is rejected, not downgraded to anonymous
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		c.Locals(UserIDKey, claims.UserID)
		c.Locals(RolesKey, claims.Roles)

		return c.Next()
	}
}

func parseClaims(authHeader, jwtSecret string) (*domain.PlanForgeClaims, error) {
	// Extract token (format: "Bearer <token>")
	tokenString := authHeader
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.PlanForgeClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*domain.PlanForgeClaims)
	if !ok || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}
	return claims, nil
}

// AuthorizeRole checks if user has at least one of the required roles
func AuthorizeRole(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rolesInterface := c.Locals(RolesKey)
		if rolesInterface == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "No roles found in token",
			})
		}

		userRoles, ok := rolesInterface.([]string)
		if !ok {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Invalid roles format",
			})
		}

		for _, userRole := range userRoles {
			for _, allowedRole := range allowedRoles {
				if userRole == allowedRole {
					return c.Next()
				}
			}
		}

		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":          "Insufficient permissions",
			"required_roles": allowedRoles,
		})
	}
}

// GetUserID extracts the user ID from Fiber context
// Returns "" for anonymous requests
func GetUserID(c *fiber.Ctx) string {
	userID, ok := c.Locals(UserIDKey).(string)
	if !ok {
		return ""
	}
	return userID
}
