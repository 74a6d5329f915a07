package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"webucket-api/internal/adapter/gin/handler"
	"webucket-api/internal/adapter/gin/middleware"
	"webucket-api/internal/usecase/auth"
	"webucket-api/pkg/logger"
)

// Handlers bundles the route handlers the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Bucket *handler.BucketHandler
}

// SetupRouter configures and returns a gin router with all routes and middleware.
func SetupRouter(
	h Handlers,
	authUC auth.Usecase,
	rateLimiter *middleware.RateLimiter,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware
	router.Use(middleware.Recovery(log))
	router.Use(logger.RequestID())
	router.Use(middleware.Logger(log))
	if rateLimiter != nil {
		router.Use(rateLimiter.Handler())
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"Hello": "World"})
	})

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ping": "pong"})
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "webucket-api",
		})
	})

	router.POST("/token", h.Auth.Token)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/add_user", h.User.AddUser)

		authed := v1.Group("")
		authed.Use(middleware.RequireAuth(authUC, log))
		{
			authed.GET("/auth/current_user", h.Auth.CurrentUser)
			authed.PATCH("/update_user/:user_id", h.User.UpdateUser)

			authed.POST("/create_bucket", h.Bucket.CreateBucket)
			authed.GET("/get_buckets_for_user", h.Bucket.ListBuckets)
			authed.GET("/bucket/:bucket_id", h.Bucket.GetBucket)
			authed.PATCH("/update_bucket/:bucket_id", h.Bucket.UpdateBucket)
			authed.DELETE("/delete_bucket/:bucket_id", h.Bucket.DeleteBucket)
			authed.PATCH("/add_user_to_bucket/:bucket_id", h.Bucket.AddUserToBucket)

			authed.POST("/add_item_to_bucket/:bucket_id", h.Bucket.AddItem)
			authed.PATCH("/update_item/:item_id", h.Bucket.UpdateItem)
			authed.DELETE("/delete_item/:item_id", h.Bucket.DeleteItem)
		}
	}

	return router
}
