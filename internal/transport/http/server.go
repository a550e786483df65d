package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "postly/internal/app"
	"postly/internal/bootstrap"
	"postly/internal/cache"
	"postly/internal/platform/rabbitmq"
	"postly/internal/repository"
	"postly/internal/transport/http/handler"
	"postly/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    app.Config.App.Name,
			"version": "1.0.0",
		})
	})

	userRepo := repository.NewUserRepository(app.MySQL)
	postRepo := repository.NewPostRepository(app.MySQL)
	postsTTL := time.Duration(app.Config.Cache.PostsTTLSeconds) * time.Second
	listCache := cache.NewPostListCache(cache.NewStore(postsTTL), postsTTL)
	eventPublisher := rabbitmq.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.PostEventQueue)

	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	postService := appsvc.NewPostService(postRepo, listCache, eventPublisher)
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.BodyLimit(app.Config.HTTP.MaxBodyBytes))

	authGroup := v1.Group("/auth")
	authGroup.POST("/signup", authHandler.Signup)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	postGroup := v1.Group("/posts")
	postGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	postGroup.POST("", postHandler.Create)
	postGroup.GET("", postHandler.List)
	postGroup.DELETE("/:id", postHandler.Delete)

	return router
}
