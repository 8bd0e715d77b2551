package api

import (
	"context"
	"fmt"
	"time"

	"scavengr/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL 本機伺服器位址
const DefaultBaseURL = "http://localhost:3000"

const (
	autocompletePath = "/api/ingredients-autocomplete"
	generatePath     = "/api/recipe-generator"
)

// Error 伺服器回傳的非 2xx 回應
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

type errorBody struct {
	Error string `json:"error"`
}

type autocompleteBody struct {
	Ingredients []common.Ingredient `json:"ingredients"`
}

type recipeBody struct {
	Recipe *common.Recipe `json:"recipe"`
}

// Client 伺服器 API 客戶端
type Client struct {
	http *resty.Client
}

// Option 客戶端選項
type Option func(*resty.Client)

// WithTimeout 設定單次請求逾時
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// New 創建客戶端，baseURL 為空時使用 DefaultBaseURL
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	for _, opt := range opts {
		opt(client)
	}
	return &Client{http: client}
}

// Autocomplete POST /api/ingredients-autocomplete
func (c *Client) Autocomplete(ctx context.Context, query string) ([]common.Ingredient, error) {
	var out autocompleteBody
	if err := c.post(ctx, autocompletePath, map[string]string{"query": query}, &out); err != nil {
		return nil, err
	}
	return out.Ingredients, nil
}

// GenerateRecipe POST /api/recipe-generator
func (c *Client) GenerateRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error) {
	var out recipeBody
	if err := c.post(ctx, generatePath, map[string][]string{"ingredients": ingredients}, &out); err != nil {
		return nil, err
	}
	if out.Recipe == nil {
		return nil, common.NewParseError(fmt.Errorf("response has no recipe"))
	}
	return out.Recipe, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	var failure errorBody
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out).
		SetError(&failure).
		Post(path)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	if resp.IsError() {
		msg := failure.Error
		if msg == "" {
			msg = resp.Status()
		}
		return &Error{StatusCode: resp.StatusCode(), Message: msg}
	}
	return nil
}
