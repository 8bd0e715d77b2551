package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scavengr/internal/core/ai/provider"
	"scavengr/internal/infrastructure/config"
	"scavengr/internal/infrastructure/metrics"
	"scavengr/internal/pkg/common"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Client Gemini API 客戶端
type Client struct {
	client  *genai.Client
	model   string
	metrics *metrics.Metrics
}

var _ provider.Provider = (*Client)(nil)

// NewClient 創建新的 Gemini 客戶端
func NewClient(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*Client, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Gemini.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Gemini.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{
		client:  client,
		model:   cfg.Gemini.Model,
		metrics: m,
	}, nil
}

// GenerateStructured 以 application/json 與固定 schema 生成回應
func (c *Client) GenerateStructured(ctx context.Context, req *provider.Request) (*provider.Response, error) {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return nil, errors.New("prompt is required")
	}

	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   req.Schema,
	}

	common.LogInfo("Sending request to Gemini",
		zap.String("model", c.model),
		zap.Int("prompt_length", len(req.Prompt)),
	)

	start := time.Now()
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.Prompt), genConfig)
	if err != nil {
		c.metrics.ObserveUpstream(metrics.APIGemini, metrics.OutcomeTransport, time.Since(start))
		common.LogError("Failed to send request to AI service",
			zap.Error(err),
			zap.String("model", c.model),
		)
		return nil, common.NewUpstreamError(metrics.APIGemini, apiErrorCode(err), err)
	}

	content := ""
	if result != nil {
		content = result.Text()
	}
	if strings.TrimSpace(content) == "" {
		c.metrics.ObserveUpstream(metrics.APIGemini, metrics.OutcomeInvalidFormat, time.Since(start))
		common.LogError("Empty content in AI service response",
			zap.String("model", c.model),
		)
		return nil, common.NewParseError(errors.New("empty content in response"))
	}

	c.metrics.ObserveUpstream(metrics.APIGemini, metrics.OutcomeSuccess, time.Since(start))

	response := &provider.Response{Content: content}
	if usage := result.UsageMetadata; usage != nil {
		response.Usage = provider.Usage{
			PromptTokens:     int(usage.PromptTokenCount),
			CompletionTokens: int(usage.CandidatesTokenCount),
			TotalTokens:      int(usage.TotalTokenCount),
		}
	}

	common.LogInfo("Successfully generated response from AI service",
		zap.String("model", c.model),
		zap.Int("content_length", len(content)),
		zap.Int("total_tokens", response.Usage.TotalTokens),
		zap.Duration("latency", time.Since(start)),
	)

	return response, nil
}

// apiErrorCode 取出上游 HTTP 狀態碼，非 API 錯誤回傳 0
func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code
	}
	return 0
}

// GetModel 獲取當前使用的模型名稱
func (c *Client) GetModel() string {
	return c.model
}

// Close 關閉客戶端
func (c *Client) Close() error {
	return nil
}
