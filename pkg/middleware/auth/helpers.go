package middleware

import (
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shoe_shop/pkg/tokens"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

func UserID(c echo.Context) string {
	s, _ := c.Get(CtxUserID).(string)
	return s
}

func Role(c echo.Context) string {
	s, _ := c.Get(CtxRole).(string)
	return s
}

func IsStaff(c echo.Context) bool {
	return slices.Contains([]string{tokens.RoleManager, tokens.RoleAdmin}, Role(c))
}

// CanAccessUser reports whether the caller may act on userID's resources.
func CanAccessUser(c echo.Context, userID string) bool {
	return UserID(c) == userID || IsStaff(c)
}
