package handlers

import (
	"github.com/gin-gonic/gin"

	"ta7wila/internal/shared/constants"
)

func currentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

func currentUserIsAdmin(c *gin.Context) bool {
	return c.GetString(constants.ContextKeyUserRole) == "admin"
}
