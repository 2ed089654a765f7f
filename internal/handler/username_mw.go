package handler

import (
	"net/http"
	"strings"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/gin-gonic/gin"
)

// usernameMiddleware accepts "name" and "@name" alike.
func (h *Handler) usernameMiddleware(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	extractedUsername := strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if extractedUsername == "" {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errUsernameIsNotProvided.Error()))
		c.Abort()
		return
	}

	c.Set("username", extractedUsername)

	c.Next()
}
