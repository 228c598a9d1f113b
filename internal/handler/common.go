package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
)

// subjectID extracts the authenticated subject's UUID from the echo
// context.  JWTAuth stores the raw "sub" claim under "user_id"; subjects
// are always UUID strings in this service.
func subjectID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}
