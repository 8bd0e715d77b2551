package recipe

import (
	"fmt"
	"strings"
)

// PantryStaples 不需列入選擇即可使用的基本調味與設備
var PantryStaples = []string{"salt", "pepper", "common herbs/spices", "cooking oil"}

const promptTemplate = `You are helping someone cook with leftover ingredients they have at home. Create a simple, practical recipe using ONLY these ingredients: %s.

IMPORTANT: The person only has these specific ingredients available. They do have basic pantry staples like %s, and normal kitchen equipment (pans, utensils, oven, stovetop, etc.).

Keep it simple and practical - this is for someone cooking at home with what they have, not a fancy restaurant dish. Make sure the recipe is easy to follow and uses ONLY the provided ingredients as the main components.`

// BuildPrompt 依選擇順序原樣嵌入食材，不排序也不去重
func BuildPrompt(ingredients []string) string {
	return fmt.Sprintf(promptTemplate, strings.Join(ingredients, ", "), strings.Join(PantryStaples, ", "))
}
