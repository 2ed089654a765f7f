package handler

import (
	"net/http"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) postsGet(c *gin.Context) {
	input, ok := bindPagination(c)
	if !ok {
		return
	}

	posts, err := h.services.GetPosts(c.Request.Context(), input.Limit, input.Offset)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsCreate(c *gin.Context) {
	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidRequestBody.Error()))
		return
	}

	post, err := h.services.CreatePost(c.Request.Context(), h.getCaller(c), input.Content, input.ImageURL)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *Handler) postsDelete(c *gin.Context) {
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	if err := h.services.DeletePost(c.Request.Context(), h.getCaller(c), postID); err != nil {
		c.JSON(statusFromError(err), dto.NewFailureResponse(h.publicError(c, err)))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *Handler) postsToggleLike(c *gin.Context) {
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	result, err := h.services.ToggleLike(c.Request.Context(), h.getCaller(c), postID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewFailureResponse(h.publicError(c, err)))
		return
	}
	if result == nil {
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(errNotAuthorized))
		return
	}

	c.JSON(http.StatusOK, dto.ToggleLikeResponse{Success: true, Liked: result.Liked})
}

func (h *Handler) postsGetComments(c *gin.Context) {
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	comments, err := h.services.GetComments(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, h.publicError(c, err).Error()))
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) postsCreateComment(c *gin.Context) {
	postID, ok := parseIDParam(c, "postID")
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewFailureResponse(errInvalidRequestBody))
		return
	}

	comment, err := h.services.CreateComment(c.Request.Context(), h.getCaller(c), postID, input.Text)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewFailureResponse(h.publicError(c, err)))
		return
	}
	if comment == nil {
		c.JSON(http.StatusUnauthorized, dto.NewFailureResponse(errNotAuthorized))
		return
	}

	c.JSON(http.StatusCreated, comment)
}
