package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bloggapi/blogg/config"
	"github.com/bloggapi/blogg/controllers"
	"github.com/bloggapi/blogg/middleware"
	"github.com/bloggapi/blogg/stores"
	"github.com/bloggapi/blogg/utils"
)

// SetupRouter wires routes, middlewares and controllers.
func SetupRouter(cfg config.AppConfig, db *gorm.DB) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(utils.GinLogger(utils.Logger))
	r.Use(utils.GinRecovery(utils.Logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, "ok")
	})

	issuer := &utils.TokenIssuer{
		Secret:   cfg.JWTSecret,
		Issuer:   cfg.JWTIssuer,
		Audience: cfg.JWTAudience,
	}

	var guard *utils.RegisterGuard
	if cfg.RedisHost != "" {
		guard = utils.NewRegisterGuard(
			utils.NewRedisClient(cfg),
			time.Duration(cfg.RegisterAttemptCooldownSec)*time.Second,
			cfg.RegisterMaxPerIPPerDay,
		)
	}

	creds := stores.NewCredentialStore(db)
	content := stores.NewContentStore(db)
	authController := controllers.NewAuthController(creds, issuer, guard)
	postController := controllers.NewPostController(creds, content)

	api := r.Group("/api/authentication")
	api.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	api.POST("/login", authController.Login)
	api.POST("/register", authController.Register)
	api.POST("/add-role", authController.AddRole)
	api.POST("/add-claim", middleware.AuthRequired(issuer), authController.AddClaim)
	api.POST("/add-role-to-user", authController.AssignRole)
	api.POST("/create-post", postController.CreatePost)
	api.POST("/add-comment", postController.AddComment)
	api.POST("/like-post", postController.LikePost)
	api.POST("/like-comment", postController.LikeComment)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, "route not found")
	})

	return r
}
