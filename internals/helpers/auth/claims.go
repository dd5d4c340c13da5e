package helper

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys written by the auth middleware.
const (
	LocUserID   = "user_id"
	LocUserRole = "user_role"
	LocUserName = "user_name"
)

var (
	ErrNoUserInToken = errors.New("user id missing from token")
	ErrNoRoleInToken = errors.New("role missing from token")
)

// GetUserIDFromToken reads the authenticated user id stashed in Locals.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	raw, ok := c.Locals(LocUserID).(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, ErrNoUserInToken
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, ErrNoUserInToken
	}
	return id, nil
}

func GetUserRoleFromToken(c *fiber.Ctx) (string, error) {
	role, ok := c.Locals(LocUserRole).(string)
	if !ok || strings.TrimSpace(role) == "" {
		return "", ErrNoRoleInToken
	}
	return role, nil
}

func IsRole(c *fiber.Ctx, want string) bool {
	role, err := GetUserRoleFromToken(c)
	return err == nil && role == want
}
