package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"scavengr/internal/infrastructure/config"
	"scavengr/internal/infrastructure/metrics"
	"scavengr/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	autocompletePath = "/food/ingredients/autocomplete"
	apiKeyHeader     = "x-api-key"
)

// SpoonacularRecord 食材搜尋 API 回傳的原始紀錄
type SpoonacularRecord struct {
	ID    json.Number `json:"id"`
	Name  string      `json:"name"`
	Image *string     `json:"image"`
	Aisle string      `json:"aisle,omitempty"`
}

// SpoonacularService 食材搜尋 API 服務
type SpoonacularService struct {
	apiKey  string
	client  *resty.Client
	metrics *metrics.Metrics
}

// NewSpoonacularService 創建食材搜尋服務
func NewSpoonacularService(cfg *config.Config, m *metrics.Metrics) *SpoonacularService {
	client := resty.New().
		SetBaseURL(cfg.Spoonacular.BaseURL).
		SetHeader("Accept", "application/json")

	return &SpoonacularService{
		apiKey:  cfg.Spoonacular.APIKey,
		client:  client,
		metrics: m,
	}
}

// Autocomplete 呼叫上游自動完成，單次請求不重試
func (s *SpoonacularService) Autocomplete(ctx context.Context, query string, number int) ([]SpoonacularRecord, error) {
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader(apiKeyHeader, s.apiKey).
		SetQueryParams(map[string]string{
			"query":           query,
			"number":          strconv.Itoa(number),
			"metaInformation": "true",
		}).
		Get(autocompletePath)
	if err != nil {
		s.metrics.ObserveUpstream(metrics.APISpoonacular, metrics.OutcomeTransport, time.Since(start))
		return nil, common.NewUpstreamError(metrics.APISpoonacular, 0, redactURL(err))
	}

	if !resp.IsSuccess() {
		s.metrics.ObserveUpstream(metrics.APISpoonacular, metrics.OutcomeStatus, time.Since(start))
		common.LogError("Spoonacular API returned error status",
			zap.Int("status_code", resp.StatusCode()),
			zap.Int("response_length", len(resp.Body())),
		)
		return nil, common.NewUpstreamError(metrics.APISpoonacular, resp.StatusCode(),
			fmt.Errorf("HTTP error! status: %d", resp.StatusCode()))
	}

	var records []SpoonacularRecord
	if err := common.ParseJSONBytes(resp.Body(), &records); err != nil {
		s.metrics.ObserveUpstream(metrics.APISpoonacular, metrics.OutcomeInvalidFormat, time.Since(start))
		return nil, common.NewUpstreamError(metrics.APISpoonacular, resp.StatusCode(),
			fmt.Errorf("failed to decode autocomplete response: %w", err))
	}

	s.metrics.ObserveUpstream(metrics.APISpoonacular, metrics.OutcomeSuccess, time.Since(start))
	common.LogDebug("Spoonacular autocomplete completed",
		zap.Int("records", len(records)),
		zap.Duration("latency", time.Since(start)),
	)
	return records, nil
}

// redactURL 移除傳輸錯誤中 URL 的 query，避免憑證寫進日誌
func redactURL(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	if u, parseErr := url.Parse(urlErr.URL); parseErr == nil {
		u.RawQuery = ""
		return &url.Error{Op: urlErr.Op, URL: u.String(), Err: urlErr.Err}
	}
	return &url.Error{Op: urlErr.Op, URL: "[REDACTED]", Err: urlErr.Err}
}
