package ingredient

import (
	"context"
	"fmt"
	"strings"

	"scavengr/internal/core/service"
	"scavengr/internal/pkg/common"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Searcher 食材搜尋上游
type Searcher interface {
	Autocomplete(ctx context.Context, query string, number int) ([]service.SpoonacularRecord, error)
}

// AutocompleteService 食材自動完成代理
type AutocompleteService struct {
	searcher Searcher
}

// NewAutocompleteService 創建自動完成代理
func NewAutocompleteService(searcher Searcher) *AutocompleteService {
	return &AutocompleteService{searcher: searcher}
}

// Autocomplete 查詢少於兩個字元時直接回傳空結果，不呼叫上游
func (s *AutocompleteService) Autocomplete(ctx context.Context, query string) ([]common.Ingredient, error) {
	if common.QueryTooShort(query) {
		return []common.Ingredient{}, nil
	}

	records, err := s.searcher.Autocomplete(ctx, query, common.MaxSuggestions)
	if err != nil {
		return nil, fmt.Errorf("autocomplete %q: %w", query, err)
	}

	ingredients := lo.FilterMap(records, func(record service.SpoonacularRecord, _ int) (common.Ingredient, bool) {
		return toIngredient(record)
	})
	if dropped := len(records) - len(ingredients); dropped > 0 {
		common.LogWarn("Dropped malformed autocomplete records",
			zap.Int("dropped", dropped),
			zap.Int("received", len(records)),
		)
	}
	if len(ingredients) > common.MaxSuggestions {
		ingredients = ingredients[:common.MaxSuggestions]
	}
	return ingredients, nil
}

// toIngredient 將上游紀錄轉為 Ingredient，缺 id 或名稱的紀錄捨棄
func toIngredient(record service.SpoonacularRecord) (common.Ingredient, bool) {
	id, err := record.ID.Int64()
	if err != nil || id <= 0 {
		return common.Ingredient{}, false
	}
	name := strings.TrimSpace(record.Name)
	if name == "" {
		return common.Ingredient{}, false
	}

	var image *string
	if record.Image != nil {
		image = common.StringPtr(*record.Image)
	}
	return common.Ingredient{
		ID:    int(id),
		Name:  name,
		Image: image,
	}, true
}
