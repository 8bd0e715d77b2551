package ingredient

import (
	"context"
	"errors"
	"io"
	"net/http"

	"scavengr/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AutocompleteRequest 自動完成請求
type AutocompleteRequest struct {
	Query string `json:"query"`
}

// AutocompleteResponse 自動完成響應
type AutocompleteResponse struct {
	Ingredients []common.Ingredient `json:"ingredients"`
}

// Autocompleter 食材自動完成服務
type Autocompleter interface {
	Autocomplete(ctx context.Context, query string) ([]common.Ingredient, error)
}

// Handler 食材處理程序
type Handler struct {
	service Autocompleter
}

// NewHandler 創建食材處理程序
func NewHandler(service Autocompleter) *Handler {
	return &Handler{service: service}
}

// HandleAutocomplete POST /api/ingredients-autocomplete
func (h *Handler) HandleAutocomplete(c *gin.Context) {
	requestID := common.RequestID(c)

	// 空 body 等同未帶 query
	var req AutocompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		common.LogWarn("請求格式無效",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, http.StatusBadRequest, common.MsgInvalidRequest)
		return
	}

	ingredients, err := h.service.Autocomplete(c.Request.Context(), req.Query)
	if err != nil {
		common.LogError("Error fetching ingredients",
			zap.Error(err),
			zap.String("request_id", requestID),
		)
		common.WriteError(c, http.StatusInternalServerError, common.MsgAutocompleteFailed)
		return
	}
	if ingredients == nil {
		ingredients = []common.Ingredient{}
	}

	c.JSON(http.StatusOK, AutocompleteResponse{Ingredients: ingredients})
}
