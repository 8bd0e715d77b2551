package provider

import (
	"context"

	"google.golang.org/genai"
)

// Request 發送到生成式 API 的結構化請求
type Request struct {
	Prompt string
	// Schema 輸出必須符合的 JSON 物件結構
	Schema *genai.Schema
}

// Response 生成式 API 的原始文字回應
type Response struct {
	Content string
	Usage   Usage
}

// Usage token 使用量
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Provider 定義生成式 AI 提供者介面
type Provider interface {
	// GenerateStructured 以 JSON 模式生成回應，單次呼叫不重試
	GenerateStructured(ctx context.Context, req *Request) (*Response, error)

	// GetModel 獲取當前使用的模型名稱
	GetModel() string

	// Close 關閉提供者連接
	Close() error
}
