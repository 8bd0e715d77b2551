package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"scavengr/internal/api/handlers/health"
	ingredientHandler "scavengr/internal/api/handlers/ingredient"
	recipeHandler "scavengr/internal/api/handlers/recipe"
	"scavengr/internal/api/middleware"
	"scavengr/internal/core/ai/gemini"
	ingredientService "scavengr/internal/core/ingredient"
	recipeService "scavengr/internal/core/recipe"
	"scavengr/internal/core/service"
	"scavengr/internal/infrastructure/config"
	"scavengr/internal/infrastructure/metrics"
	"scavengr/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Autocomplete ingredientHandler.Autocompleter
	Generator    recipeHandler.Generator
	Metrics      *metrics.Metrics
	Model        string
}

// SetupRouter 建立上游客戶端與服務後設置路由，回傳的 cleanup 於關機時呼叫
func SetupRouter(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*gin.Engine, func() error, error) {
	common.LogInfo("Initializing services",
		zap.String("model", cfg.Gemini.Model),
		zap.String("spoonacular_base_url", cfg.Spoonacular.BaseURL),
	)

	// 初始化 Gemini 客戶端
	aiClient, err := gemini.NewClient(ctx, cfg, m)
	if err != nil {
		common.LogError("Failed to initialize AI client", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to initialize AI client: %w", err)
	}

	spoonacular := service.NewSpoonacularService(cfg, m)

	router := NewRouter(cfg, Dependencies{
		Autocomplete: ingredientService.NewAutocompleteService(spoonacular),
		Generator:    recipeService.NewRecipeService(aiClient),
		Metrics:      m,
		Model:        aiClient.GetModel(),
	})

	return router, aiClient.Close, nil
}

// NewRouter 設置路由
func NewRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(common.GenerateUUID)))
	router.Use(middleware.Logger(deps.Metrics))

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:   []string{"Content-Length", "X-Request-ID"},
		MaxAge:          12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	healthHandler := health.NewHandler(cfg.App.Version, deps.Model)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	ingredients := ingredientHandler.NewHandler(deps.Autocomplete)
	recipes := recipeHandler.NewHandler(deps.Generator, recipeService.JSONSchema())

	// API 路由組
	api := router.Group("/api")
	{
		api.POST("/ingredients-autocomplete", ingredients.HandleAutocomplete)
		api.POST("/recipe-generator", recipes.HandleGenerate)
		api.GET("/recipe-schema", recipes.HandleSchema)
	}

	router.NoRoute(func(c *gin.Context) {
		common.WriteError(c, http.StatusNotFound, "Not found")
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
