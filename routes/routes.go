package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"go-agroadvisor/config"
	"go-agroadvisor/controllers"
	"go-agroadvisor/engine"
	"go-agroadvisor/marketdata"
	"go-agroadvisor/middleware"
)

// Deps are the services the router wires into controllers.
type Deps struct {
	Config   *config.Config
	DB       *sqlx.DB
	Engine   *engine.Engine
	Provider marketdata.Provider // nil disables real market data
	Logger   *zap.Logger
}

// SetupRouter configures all routes.
func SetupRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(d.Logger), middleware.CORS(d.Config.Server.CORSOrigins))

	secret := []byte(d.Config.Auth.JWTSecret)
	authController := controllers.NewAuthController(d.DB, secret, d.Config.Auth.TokenDuration(),
		d.Config.Auth.AdminUsers, d.Logger)
	recommendController := controllers.NewRecommendController(d.Engine, d.Logger)
	trendController := controllers.NewTrendController(d.Provider,
		d.Config.Engine.DefaultTrendDays, d.Config.Engine.MaxTrendDays, d.Logger)
	favoriteController := controllers.NewFavoriteController(d.DB, d.Logger)

	// Public routes
	public := r.Group("/")
	{
		public.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		public.POST("/register", authController.Register)
		public.POST("/login", authController.Login)
	}

	api := r.Group("/api")
	{
		api.POST("/recommend/conditions", recommendController.ByConditions)
		api.POST("/recommend/soil", recommendController.BySoil)
		api.POST("/trends", trendController.Trends)
		api.GET("/knowledge/crops", recommendController.Crops)
		api.GET("/knowledge/locations", recommendController.Locations)
	}

	// Routes that need a token
	protected := r.Group("/api/favorites")
	protected.Use(middleware.AuthMiddleware(secret))
	{
		protected.POST("", favoriteController.SaveFavorite)
		protected.GET("", favoriteController.GetFavorites)
		protected.GET("/:id", favoriteController.GetFavorite)
		protected.PUT("/:id", favoriteController.UpdateFavorite)
		protected.DELETE("/:id", favoriteController.DeleteFavorite)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(secret), middleware.RequireAdmin())
	{
		admin.GET("/users", authController.ListUsers)
	}

	return r
}
