package recipe

import (
	"fmt"

	"scavengr/internal/pkg/common"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// RequiredFields 必要欄位（tips 為選填）
var RequiredFields = []string{"recipeName", "description", "ingredients", "instructions", "cookingTime", "difficulty", "serves"}

// PropertyOrdering 欄位輸出順序
var PropertyOrdering = []string{"recipeName", "description", "ingredients", "instructions", "cookingTime", "difficulty", "serves", "tips"}

var validate = validator.New(validator.WithRequiredStructEnabled())

// ResponseSchema 生成式 API 的輸出結構，屬於對外契約，不可任意調整
func ResponseSchema() *genai.Schema {
	stringList := func(description string) *genai.Schema {
		return &genai.Schema{
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: description,
		}
	}
	text := func(description string) *genai.Schema {
		return &genai.Schema{Type: genai.TypeString, Description: description}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"recipeName":   text("The name of the recipe"),
			"description":  text("Brief description of what you're making"),
			"ingredients":  stringList("List of ingredients with quantities"),
			"instructions": stringList("Step-by-step cooking instructions"),
			"cookingTime":  text("Total cooking time (e.g., '30 minutes')"),
			"difficulty":   text("Difficulty level (Easy, Medium, Hard)"),
			"serves":       text("Number of people it serves (e.g., '4 people')"),
			"tips":         text("Helpful tips for substitutions or variations"),
		},
		Required:         append([]string(nil), RequiredFields...),
		PropertyOrdering: append([]string(nil), PropertyOrdering...),
	}
}

// JSONSchema 以 reflection 產生 Recipe 的 JSON Schema，供前端驗證
func JSONSchema() *jsonschema.Schema {
	r := jsonschema.Reflector{
		DoNotReference: true,
		ExpandedStruct: true,
	}
	schema := r.Reflect(&common.Recipe{})
	schema.Title = "Recipe"
	return schema
}

// Validate 檢查必要欄位與型別，結構不完整視為 ParseError
func Validate(r *common.Recipe) error {
	if r == nil {
		return common.NewParseError(fmt.Errorf("recipe is empty"))
	}
	if err := validate.Struct(r); err != nil {
		return common.NewParseError(fmt.Errorf("recipe failed schema validation: %w", err))
	}
	return nil
}

// Parse 解析模型原始文字並驗證
func Parse(raw string) (*common.Recipe, error) {
	content := common.StripCodeFence(raw)
	if content == "" {
		return nil, common.NewParseError(fmt.Errorf("empty AI response"))
	}

	var result common.Recipe
	if err := common.ParseJSON(content, &result); err != nil {
		return nil, common.NewParseError(err)
	}
	if err := Validate(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
