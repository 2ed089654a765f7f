package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

const identityKey = "identity"

// sessionMiddleware attaches the identity carried by the bearer token, if any.
// Requests without an Authorization header proceed anonymously.
func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.Next()
		return
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(strings.TrimSpace(token), h.opts.SessionSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, err.Error()))
		c.Abort()
		return
	}

	c.Set(identityKey, identityFromClaims(claims))

	c.Next()
}

func (h *Handler) authMiddleware(c *gin.Context) {
	if h.getCaller(c).IsAnonymous() {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	c.Next()
}

func (h *Handler) accessLogMiddleware(c *gin.Context) {
	start := time.Now()

	c.Next()

	h.logger.Info("request",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("latency", time.Since(start)),
	)
}

func identityFromClaims(claims jwt.MapClaims) *model.ExternalIdentity {
	identity := &model.ExternalIdentity{
		ExternalID:     lo.FromPtr(utils.StringClaim(claims, "sub")),
		FirstName:      utils.StringClaim(claims, "given_name"),
		LastName:       utils.StringClaim(claims, "family_name"),
		Username:       utils.StringClaim(claims, "username"),
		EmailAddresses: utils.StringsClaim(claims, "email_addresses"),
		ImageURL:       lo.FromPtr(utils.StringClaim(claims, "picture")),
	}
	if len(identity.EmailAddresses) == 0 {
		identity.EmailAddresses = utils.StringsClaim(claims, "email")
	}

	return identity
}
