package recipe

import (
	"context"
	"fmt"
	"time"

	"scavengr/internal/core/ai/provider"
	"scavengr/internal/pkg/common"

	"go.uber.org/zap"
)

// RecipeService 食譜生成服務
// 驗證輸入 → 組 prompt → 以固定 schema 呼叫生成式 API → 解析並驗證
type RecipeService struct {
	provider provider.Provider
}

// NewRecipeService 創建新的食譜生成服務
func NewRecipeService(p provider.Provider) *RecipeService {
	return &RecipeService{
		provider: p,
	}
}

// GenerateRecipe 根據選擇的食材生成食譜，每次只呼叫上游一次
func (s *RecipeService) GenerateRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error) {
	if len(ingredients) == 0 {
		return nil, common.NewValidationError(common.MsgIngredientsRequired)
	}

	prompt := BuildPrompt(ingredients)

	start := time.Now()
	resp, err := s.provider.GenerateStructured(ctx, &provider.Request{
		Prompt: prompt,
		Schema: ResponseSchema(),
	})
	common.LogUpstreamCall("gemini", time.Since(start), err, "")
	if err != nil {
		if common.IsParseError(err) || common.IsUpstreamError(err) {
			return nil, err
		}
		return nil, common.NewUpstreamError("gemini", 0, err)
	}
	if resp == nil {
		return nil, common.NewParseError(fmt.Errorf("empty AI response"))
	}

	common.LogDebug("AI 回應內容 (recipe-generator)",
		zap.Int("ai_response_length", len(resp.Content)),
	)

	result, err := Parse(resp.Content)
	if err != nil {
		common.LogError("食譜解析失敗",
			zap.Error(err),
			zap.Int("ai_response_length", len(resp.Content)),
		)
		return nil, err
	}

	common.LogInfo("食譜生成成功",
		zap.String("recipe_name", result.RecipeName),
		zap.Int("ingredients_count", len(result.Ingredients)),
		zap.Int("steps_count", len(result.Instructions)),
	)
	return result, nil
}
