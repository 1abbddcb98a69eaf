package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/stockpilot/inventory-api/internal/middleware"
	"github.com/stockpilot/inventory-api/internal/models"
)

// currentUser rebuilds the acting user from the claims the auth middleware
// stashed in the context. ID and role are all the policy checks need; the
// full row is only loaded where the response requires it.
func currentUser(c *gin.Context) models.User {
	id, _ := c.MustGet(middleware.ContextUserID).(uint)
	return models.User{ID: id, Role: c.GetString(middleware.ContextUserRole)}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
