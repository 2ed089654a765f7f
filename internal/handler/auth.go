package handler

import (
	"net/http"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/gin-gonic/gin"
)

// authSync provisions the local user for the session identity on first sighting.
func (h *Handler) authSync(c *gin.Context) {
	user, err := h.services.SyncIdentity(c.Request.Context(), h.getIdentity(c))
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.SyncResponse{Ok: true, User: user})
}
