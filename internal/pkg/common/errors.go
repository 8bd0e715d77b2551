package common

import (
	"errors"
	"fmt"
)

// 錯誤分類：
//   ValidationError 呼叫端輸入不合法 (4xx)
//   UpstreamError   外部 API 傳輸失敗或非成功狀態
//   ParseError      回應不是合法 JSON 或缺少必要欄位

// ValidationError 表示驗證錯誤
type ValidationError struct {
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError 創建新的驗證錯誤
func NewValidationError(message string) error {
	return &ValidationError{
		message: message,
	}
}

// IsValidationError 檢查是否為驗證錯誤
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// UpstreamError 外部服務錯誤
type UpstreamError struct {
	API        string // spoonacular / gemini
	StatusCode int    // 0 表示傳輸層錯誤
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream error (status %d): %v", e.API, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s upstream error: %v", e.API, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError 創建外部服務錯誤
func NewUpstreamError(api string, statusCode int, err error) error {
	return &UpstreamError{
		API:        api,
		StatusCode: statusCode,
		Err:        err,
	}
}

// IsUpstreamError 檢查是否為外部服務錯誤
func IsUpstreamError(err error) bool {
	var target *UpstreamError
	return errors.As(err, &target)
}

// ParseError 解析錯誤
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse AI response: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError 創建解析錯誤
func NewParseError(err error) error {
	return &ParseError{Err: err}
}

// IsParseError 檢查是否為解析錯誤
func IsParseError(err error) bool {
	var target *ParseError
	return errors.As(err, &target)
}

// 對外固定錯誤訊息，不透露內部細節
const (
	MsgInvalidRequest      = "Invalid request format"
	MsgIngredientsRequired = "Ingredients array is required and must not be empty"
	MsgAutocompleteFailed  = "Failed to fetch ingredients"
	MsgInternalError       = "Internal server error."
	MsgBodyTooLarge        = "Request body too large"
)
