package recipe

import (
	"context"
	"encoding/json"
	"net/http"

	"scavengr/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GenerateRequest 食譜生成請求
type GenerateRequest struct {
	Ingredients json.RawMessage `json:"ingredients"`
}

// GenerateResponse 食譜生成響應
type GenerateResponse struct {
	Recipe *common.Recipe `json:"recipe"`
}

// Generator 食譜生成服務
type Generator interface {
	GenerateRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error)
}

// Handler 食譜處理程序
type Handler struct {
	service Generator
	schema  any
}

// NewHandler 創建新的食譜處理程序，schema 為 /api/recipe-schema 的回應內容
func NewHandler(service Generator, schema any) *Handler {
	return &Handler{
		service: service,
		schema:  schema,
	}
}

// HandleGenerate POST /api/recipe-generator
func (h *Handler) HandleGenerate(c *gin.Context) {
	requestID := common.RequestID(c)

	ingredients, ok := h.bindIngredients(c, requestID)
	if !ok {
		common.WriteError(c, http.StatusBadRequest, common.MsgIngredientsRequired)
		return
	}

	common.LogInfo("開始處理食譜生成請求",
		zap.String("request_id", requestID),
		zap.Int("ingredients_count", len(ingredients)),
	)

	recipe, err := h.service.GenerateRecipe(c.Request.Context(), ingredients)
	if err != nil {
		if common.IsValidationError(err) {
			common.WriteError(c, http.StatusBadRequest, err.Error())
			return
		}
		common.LogError("食譜生成失敗",
			zap.Error(err),
			zap.Bool("parse_error", common.IsParseError(err)),
			zap.Bool("upstream_error", common.IsUpstreamError(err)),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, http.StatusInternalServerError, common.MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, GenerateResponse{Recipe: recipe})
}

// bindIngredients 缺少、非陣列、空陣列或含非字串元素皆視為無效
func (h *Handler) bindIngredients(c *gin.Context, requestID string) ([]string, bool) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		return nil, false
	}
	if len(req.Ingredients) == 0 {
		return nil, false
	}

	var ingredients []string
	if err := json.Unmarshal(req.Ingredients, &ingredients); err != nil {
		common.LogWarn("ingredients 不是字串陣列",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		return nil, false
	}
	if len(ingredients) == 0 {
		return nil, false
	}
	return ingredients, true
}

// HandleSchema GET /api/recipe-schema
func (h *Handler) HandleSchema(c *gin.Context) {
	c.JSON(http.StatusOK, h.schema)
}
