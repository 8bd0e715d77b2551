package ingredient

import (
	"net/url"
	"strings"

	"scavengr/internal/pkg/common"
)

const cdnBaseURL = "https://spoonacular.com/cdn/ingredients_"

// ImageSize CDN 提供的圖片尺寸
type ImageSize string

const (
	ImageSmall  ImageSize = "100x100"
	ImageMedium ImageSize = "250x250"
	ImageLarge  ImageSize = "500x500"
)

// ImageURL 組出食材圖片網址，沒有圖片時回傳空字串
func ImageURL(ingredient common.Ingredient, size ImageSize) string {
	if ingredient.Image == nil {
		return ""
	}
	image := strings.TrimSpace(*ingredient.Image)
	if image == "" {
		return ""
	}
	if strings.HasPrefix(image, "http://") || strings.HasPrefix(image, "https://") {
		return image
	}
	if size == "" {
		size = ImageSmall
	}
	return cdnBaseURL + string(size) + "/" + url.PathEscape(image)
}
