package middleware

import (
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"container-tracking/constants"
	"container-tracking/types"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// RequireAuthentication validates the Bearer token and stores the claims and
// the caller's identity in the request locals.
func RequireAuthentication() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: err.Error(),
			})
		}
		return c.Next()
	}
}

// RequireAdmin validates the token and rejects non-admin callers.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := authenticate(c); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ApiResponse{
				Status:  fiber.StatusUnauthorized,
				Message: err.Error(),
			})
		}
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(types.ApiResponse{
				Status:  fiber.StatusForbidden,
				Message: "Administrator access required",
			})
		}
		return c.Next()
	}
}

// authenticate parses the Bearer token and fills the request locals.
func authenticate(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return fmt.Errorf("authorization header missing")
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return fmt.Errorf("invalid token format")
	}

	token, err := jwt.Parse(tokenParts[1], func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil {
		return fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return fmt.Errorf("invalid token")
	}

	c.Locals(constants.LocalsUser, claims)
	if id, ok := claims[constants.ClaimUserID].(float64); ok {
		c.Locals(constants.LocalsUserID, uint(id))
	}
	if isAdmin, ok := claims[constants.ClaimIsAdmin].(bool); ok {
		c.Locals(constants.LocalsIsAdmin, isAdmin)
	}
	return nil
}

// UserID returns the authenticated caller's id from the request locals.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(constants.LocalsUserID).(uint)
	return id, ok
}

// CallerID returns the caller's id, zero when unauthenticated. Only for
// handlers behind RequireAuthentication.
func CallerID(c *fiber.Ctx) uint {
	id, _ := UserID(c)
	return id
}

// IsAdmin reports whether the authenticated caller carries the admin claim.
func IsAdmin(c *fiber.Ctx) bool {
	isAdmin, ok := c.Locals(constants.LocalsIsAdmin).(bool)
	return ok && isAdmin
}
