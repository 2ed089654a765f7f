package handler

import (
	"errors"
	"net/http"

	"github.com/ElSheemy11/High-Up/internal/service"
	"github.com/gin-gonic/gin"
)

var (
	errNotAuthorized         = errors.New("user is not authorized")
	errUsernameIsNotProvided = errors.New("please provide username")
	errInvalidID             = errors.New("provided an invalid ID")
	errInvalidRequestBody    = errors.New("invalid request body")
	errServiceUnavailable    = errors.New("service unavailable")
)

func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, service.ErrPostNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicError hides the text of errors the services did not classify.
func (h *Handler) publicError(c *gin.Context, err error) error {
	switch {
	case statusFromError(err) != http.StatusInternalServerError:
		return err
	case errors.Is(err, service.ErrInternal), errors.Is(err, service.ErrProvisioning):
		return err
	}

	h.logger.Sugar().Errorf("unexpected error on %s %s: %s", c.Request.Method, c.FullPath(), err.Error())
	return service.ErrInternal
}
