package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/BloggingApp/feed-service/internal/config"
	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/BloggingApp/feed-service/internal/metrics"
	"github.com/BloggingApp/feed-service/internal/model"
	"github.com/BloggingApp/feed-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const cachedUserKey = "cached-user"

type Config struct {
	Auth         config.AuthConfig
	ClientOrigin string
	// Gatherer backs GET /metrics; the route is not registered when nil.
	Gatherer prometheus.Gatherer
}

type Handler struct {
	logger   *zap.Logger
	services *service.Service
	metrics  *metrics.Metrics
	cfg      Config
}

func New(logger *zap.Logger, services *service.Service, metrics *metrics.Metrics, cfg Config) *Handler {
	return &Handler{
		logger:   logger,
		services: services,
		metrics:  metrics,
		cfg:      cfg,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(h.recover))
	r.Use(h.observeRequest)

	corsConfig := cors.Config{
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}
	if h.cfg.ClientOrigin != "" {
		corsConfig.AllowOrigins = []string{h.cfg.ClientOrigin}
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	r.Use(cors.New(corsConfig))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewBasicResponse(false, errRouteNotFound.Error()))
	})

	if h.cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(h.cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := r.Group("/api/v1")
	{
		posts := v1.Group("/posts")
		{
			posts.GET("", h.postsGlobal)
			posts.POST("", h.authMiddleware, h.postsCreate)
		}

		groups := v1.Group("/groups")
		{
			groups.GET("", h.groupsList)
			groups.GET("/:slug/posts", h.groupsPosts)
		}

		v1.GET("/follow", h.authMiddleware, h.followFeed)

		user := v1.Group("/users/:username")
		{
			user.GET("/posts", h.notRequiredAuthMiddleware, h.postsProfile)
			user.POST("/follow", h.authMiddleware, h.followCreate)
			user.POST("/unfollow", h.authMiddleware, h.followDelete)

			post := user.Group("/posts/:postID")
			{
				post.GET("", h.postsGetSingle)
				post.PATCH("", h.authMiddleware, h.postsEdit)
				post.GET("/comments", h.commentsList)
				post.POST("/comments", h.authMiddleware, h.commentsCreate)
			}
		}

		admin := v1.Group("/admin", h.moderatorMiddleware)
		{
			admin.POST("/groups", h.adminGroupsCreate)
			admin.DELETE("/groups/:slug", h.adminGroupsDelete)
			admin.DELETE("/posts/:postID", h.adminPostsDelete)
			admin.POST("/cache/clear", h.adminCacheClear)
		}
	}

	return r
}

func (h *Handler) recover(c *gin.Context, recovered any) {
	h.logger.Sugar().Errorf("panic while serving %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewBasicResponse(false, service.ErrInternal.Error()))
}

func (h *Handler) observeRequest(c *gin.Context) {
	start := time.Now()

	c.Next()

	route := c.FullPath()
	if route == "" {
		route = "unmatched"
	}
	h.metrics.ObserveRequest(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
}

// getCachedUserFromRequest returns nil for anonymous requests.
func (h *Handler) getCachedUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, exists := c.Get(cachedUserKey)
	if !exists {
		return nil
	}

	user, ok := userReq.(*model.CachedUser)
	if !ok {
		return nil
	}

	return user
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(c.Param("postID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}

	return postID, true
}
