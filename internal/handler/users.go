package handler

import (
	"net/http"
	"strings"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(c.Param(name)))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidID.Error()))
		return uuid.Nil, false
	}

	return id, true
}

func bindPagination(c *gin.Context) (dto.Pagination, bool) {
	var input dto.Pagination
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return input, false
	}

	return input, true
}

func (h *Handler) usersMe(c *gin.Context) {
	userID, err := h.services.ResolveLocalID(c.Request.Context(), h.getCaller(c))
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	user, err := h.services.GetProfile(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) usersGetByUsername(c *gin.Context) {
	username := c.GetString("username")

	user, err := h.services.GetProfileByUsername(c.Request.Context(), username)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GetUserDtoFromFullUser(*user))
}

func (h *Handler) usersGetByID(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	user, err := h.services.GetProfile(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GetUserDtoFromFullUser(*user))
}

func (h *Handler) usersIsFollowing(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	following, err := h.services.IsFollowing(c.Request.Context(), h.getCaller(c), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, dto.IsFollowingResponse{Following: following})
}

func (h *Handler) usersGetPosts(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}
	input, ok := bindPagination(c)
	if !ok {
		return
	}

	posts, err := h.services.GetUserPosts(c.Request.Context(), userID, input.Limit, input.Offset)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) usersGetLikedPosts(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}
	input, ok := bindPagination(c)
	if !ok {
		return
	}

	posts, err := h.services.GetUserLikedPosts(c.Request.Context(), userID, input.Limit, input.Offset)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) usersSuggestions(c *gin.Context) {
	input, ok := bindPagination(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, h.services.SuggestUsers(c.Request.Context(), h.getCaller(c), input.Limit))
}

func (h *Handler) usersToggleFollow(c *gin.Context) {
	userID, ok := parseIDParam(c, "userID")
	if !ok {
		return
	}

	result, err := h.services.ToggleFollow(c.Request.Context(), h.getCaller(c), userID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewFailureResponse(h.publicError(c, err)))
		return
	}
	if result == nil {
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(errNotAuthorized))
		return
	}

	c.JSON(http.StatusOK, dto.ToggleFollowResponse{Success: true, FollowingNow: result.FollowingNow})
}
