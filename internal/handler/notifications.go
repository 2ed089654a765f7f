package handler

import (
	"net/http"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) notificationsGet(c *gin.Context) {
	input, ok := bindPagination(c)
	if !ok {
		return
	}

	notifications, err := h.services.GetNotifications(c.Request.Context(), h.getCaller(c), input.Limit, input.Offset)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, notifications)
}
