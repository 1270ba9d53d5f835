package api

import (
	"github.com/gin-gonic/gin"
	"github.com/timmy/calsnap/internal/api/handler"
	"github.com/timmy/calsnap/internal/api/middleware"
	"github.com/timmy/calsnap/internal/logger"
	"github.com/timmy/calsnap/internal/service"
)

// ImagePath is the route prefix that streams stored meal photos.
const ImagePath = "/api/v1/images"

// Services bundles what the HTTP layer depends on.
type Services struct {
	Meals    *service.MealService
	Sessions *service.SessionService
	Profiles *service.ProfileService
	Feed     *service.CommunityFeed
	Model    string
	Photos   bool
}

// RouterConfig holds HTTP-level settings.
type RouterConfig struct {
	Mode         string
	MaxBodyBytes int64
	CORS         middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(svc *Services, cfg *RouterConfig, log *logger.Logger) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.MaxBodyBytes(cfg.MaxBodyBytes))

	healthHandler := handler.NewHealthHandler(svc.Model, svc.Photos)
	mealHandler := handler.NewMealHandler(svc.Meals)
	progressHandler := handler.NewProgressHandler(svc.Meals)
	sessionHandler := handler.NewSessionHandler(svc.Sessions, svc.Profiles)
	communityHandler := handler.NewCommunityHandler(svc.Feed)
	viewHandler := handler.NewViewHandler(mealHandler, svc.Feed, svc.Sessions, svc.Profiles)

	r.GET("/health", healthHandler.Health)

	// Stateless photo description, also mounted at the root for older clients
	r.POST("/analyze-image", mealHandler.AnalyzeImage)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/analyze-image", mealHandler.AnalyzeImage)

		// Meals
		v1.POST("/meals/analyze", mealHandler.Analyze)
		v1.POST("/meals/confirm", mealHandler.Confirm)
		v1.GET("/meals/draft", mealHandler.GetDraft)
		v1.DELETE("/meals/draft", mealHandler.DiscardDraft)
		v1.GET("/meals", mealHandler.List)
		v1.DELETE("/meals/:index", mealHandler.Remove)
		v1.GET("/images/*key", mealHandler.Image)

		// Progress
		v1.GET("/progress/today", progressHandler.Today)
		v1.GET("/progress/history", progressHandler.History)

		// Session and profile
		v1.GET("/session", sessionHandler.GetSession)
		v1.PUT("/session", sessionHandler.UpdateSession)
		v1.GET("/profile", sessionHandler.GetProfile)
		v1.PUT("/profile", sessionHandler.UpdateProfile)
		v1.GET("/recommendations", sessionHandler.ListRecommendations)
		v1.GET("/recommendations/:index", sessionHandler.GetRecommendation)

		// Community
		v1.GET("/posts", communityHandler.ListPosts)
		v1.POST("/posts", communityHandler.CreatePost)
		v1.PUT("/posts/filter", communityHandler.SetFilter)
		v1.DELETE("/posts/filter", communityHandler.ClearFilter)
		v1.POST("/posts/:id/like", communityHandler.ToggleLike)
		v1.POST("/posts/:id/comments", communityHandler.AddComment)
		v1.GET("/hashtags", communityHandler.Hashtags)

		// Tabs
		v1.GET("/views/:tab", viewHandler.Get)
	}

	return r
}
