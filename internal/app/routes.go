package app

import (
	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/middleware"
	"github.com/netplus/core/internal/modules/auth/user"
	"github.com/netplus/core/internal/modules/chat"
	"github.com/netplus/core/internal/modules/ingest"
	pkgredis "github.com/netplus/core/internal/pkg/redis"
	"github.com/netplus/core/internal/pkg/response"
	"gorm.io/gorm"
)

func registerRoutes(r *gin.Engine, db *gorm.DB, rc *pkgredis.Client) {
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})
	r.NoMethod(func(c *gin.Context) {
		response.MethodNotAllowed(c)
	})

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{"message": "NetPlus backend is running"})
	})

	api := r.Group("/api")
	api.Use(middleware.OptionalAuth(db))
	if rc != nil {
		// Rate limiting only throttles unauthenticated traffic.
		api.Use(middleware.RateLimit(rc.Raw()))
	}

	user.NewHandler(user.NewService(db)).RegisterRoutes(api, authMW)
	ingest.NewHandler(ingest.NewService(db)).RegisterRoutes(api, authMW)
	chat.NewHandler(chat.NewService(db)).RegisterRoutes(api, authMW)
}
