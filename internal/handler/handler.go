package handler

import (
	"net/http"

	"github.com/ElSheemy11/High-Up/internal/dto"
	"github.com/ElSheemy11/High-Up/internal/metrics"
	"github.com/ElSheemy11/High-Up/internal/model"
	"github.com/ElSheemy11/High-Up/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	SessionSecret []byte
	ClientOrigin  string
}

type Handler struct {
	logger   *zap.Logger
	services *service.Service
	opts     Options
}

func New(logger *zap.Logger, services *service.Service, opts Options) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
		opts:     opts,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(h.accessLogMiddleware)
	r.Use(metrics.InstrumentHandler)
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{h.opts.ClientOrigin},
		AllowMethods:     []string{"POST", "GET", "PUT", "DELETE"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.GET("/health", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1", h.sessionMiddleware)
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/sync", h.authMiddleware, h.authSync)
		}

		users := v1.Group("/users")
		{
			users.GET("/@me", h.authMiddleware, h.usersMe)
			users.GET("/suggestions", h.usersSuggestions)
			users.GET("/byUsername/:username", h.usernameMiddleware, h.usersGetByUsername)
			users.PUT("/follow/:userID", h.authMiddleware, h.usersToggleFollow)

			users.GET("/:userID", h.usersGetByID)
			users.GET("/:userID/isFollowing", h.usersIsFollowing)
			users.GET("/:userID/posts", h.usersGetPosts)
			users.GET("/:userID/likedPosts", h.usersGetLikedPosts)
		}

		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGet)
			posts.POST("", h.authMiddleware, h.postsCreate)
			posts.DELETE("/:postID", h.authMiddleware, h.postsDelete)
			posts.PUT("/:postID/like", h.authMiddleware, h.postsToggleLike)
			posts.GET("/:postID/comments", h.postsGetComments)
			posts.POST("/:postID/comments", h.authMiddleware, h.postsCreateComment)
		}

		v1.GET("/notifications", h.authMiddleware, h.notificationsGet)
	}

	return r
}

func (h *Handler) health(c *gin.Context) {
	if err := h.services.Health(c.Request.Context()); err != nil {
		h.logger.Sugar().Errorf("health check failed: %s", err.Error())
		c.JSON(http.StatusServiceUnavailable, dto.NewBasicResponse(false, errServiceUnavailable.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}

func (h *Handler) getIdentity(c *gin.Context) *model.ExternalIdentity {
	identityReq, _ := c.Get(identityKey)

	identity, ok := identityReq.(*model.ExternalIdentity)
	if !ok {
		return nil
	}

	return identity
}

func (h *Handler) getCaller(c *gin.Context) model.Caller {
	return h.getIdentity(c).Caller()
}
