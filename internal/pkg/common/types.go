package common

import (
	"strings"
	"unicode/utf8"
)

// MinQueryLength 搜尋字串最短長度，低於此長度不呼叫上游
const MinQueryLength = 2

// MaxSuggestions 自動完成最多回傳筆數
const MaxSuggestions = 10

// Ingredient 食材（來自食材搜尋 API，取得後不可變）
type Ingredient struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"` // 允許 null
}

// Recipe 生成的食譜
// 欄位名稱與順序即為對外契約，需與生成 schema 一致
type Recipe struct {
	RecipeName   string   `json:"recipeName" validate:"required" jsonschema_description:"The name of the recipe"`
	Description  string   `json:"description" validate:"required" jsonschema_description:"Brief description of what you're making"`
	Ingredients  []string `json:"ingredients" validate:"required,min=1,dive,required" jsonschema_description:"List of ingredients with quantities"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required" jsonschema_description:"Step-by-step cooking instructions"`
	CookingTime  string   `json:"cookingTime" validate:"required" jsonschema_description:"Total cooking time (e.g., '30 minutes')"`
	Difficulty   string   `json:"difficulty" validate:"required" jsonschema_description:"Difficulty level (Easy, Medium, Hard)"`
	Serves       string   `json:"serves" validate:"required" jsonschema_description:"Number of people it serves (e.g., '4 people')"`
	Tips         string   `json:"tips,omitempty" jsonschema_description:"Helpful tips for substitutions or variations"`
}

// QueryTooShort 判斷查詢字串是否短於最短長度（以字元計）
func QueryTooShort(query string) bool {
	return utf8.RuneCountInString(query) < MinQueryLength
}

// StringPtr 回傳字串指標，空字串視為 nil
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
