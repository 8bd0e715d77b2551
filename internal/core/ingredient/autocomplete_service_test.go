package ingredient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"scavengr/internal/core/service"
	"scavengr/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	calls   int
	number  int
	records []service.SpoonacularRecord
	err     error
}

func (f *fakeSearcher) Autocomplete(_ context.Context, _ string, number int) ([]service.SpoonacularRecord, error) {
	f.calls++
	f.number = number
	return f.records, f.err
}

func record(id string, name string, image *string) service.SpoonacularRecord {
	return service.SpoonacularRecord{ID: json.Number(id), Name: name, Image: image}
}

func TestAutocompleteShortQuerySkipsUpstream(t *testing.T) {
	fake := &fakeSearcher{}
	svc := NewAutocompleteService(fake)

	for _, query := range []string{"", "t", "蕃"} {
		result, err := svc.Autocomplete(context.Background(), query)
		require.NoError(t, err)
		assert.NotNil(t, result)
		assert.Empty(t, result)
	}
	assert.Equal(t, 0, fake.calls)
}

func TestAutocompleteMapsRecordsInOrder(t *testing.T) {
	png := "tomato.png"
	empty := ""
	fake := &fakeSearcher{records: []service.SpoonacularRecord{
		record("11529", "tomato", &png),
		record("11887", "tomato paste", nil),
		record("10511529", "roma tomato", &empty),
	}}
	svc := NewAutocompleteService(fake)

	result, err := svc.Autocomplete(context.Background(), "tom")
	require.NoError(t, err)
	require.Len(t, result, 3)
	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, common.MaxSuggestions, fake.number)

	assert.Equal(t, 11529, result[0].ID)
	assert.Equal(t, "tomato", result[0].Name)
	require.NotNil(t, result[0].Image)
	assert.Equal(t, "tomato.png", *result[0].Image)
	assert.Equal(t, "tomato paste", result[1].Name)
	assert.Nil(t, result[1].Image)
	assert.Nil(t, result[2].Image)
}

func TestAutocompleteDropsMalformedRecords(t *testing.T) {
	fake := &fakeSearcher{records: []service.SpoonacularRecord{
		record("", "no id", nil),
		record("12", "  ", nil),
		record("1.5", "fractional", nil),
		record("7", "basil", nil),
	}}
	svc := NewAutocompleteService(fake)

	result, err := svc.Autocomplete(context.Background(), "ba")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, 7, result[0].ID)
}

func TestAutocompleteCapsResults(t *testing.T) {
	var records []service.SpoonacularRecord
	for i := 1; i <= 15; i++ {
		records = append(records, record(fmt.Sprint(i), fmt.Sprintf("item %d", i), nil))
	}
	svc := NewAutocompleteService(&fakeSearcher{records: records})

	result, err := svc.Autocomplete(context.Background(), "it")
	require.NoError(t, err)
	assert.Len(t, result, common.MaxSuggestions)
	assert.Equal(t, 1, result[0].ID)
}

func TestAutocompletePropagatesUpstreamError(t *testing.T) {
	upstream := common.NewUpstreamError("spoonacular", 500, errors.New("HTTP error! status: 500"))
	svc := NewAutocompleteService(&fakeSearcher{err: upstream})

	_, err := svc.Autocomplete(context.Background(), "tom")
	require.Error(t, err)
	assert.True(t, common.IsUpstreamError(err))
}

func TestImageURL(t *testing.T) {
	png := "red-onion.png"
	absolute := "https://img.example.com/onion.jpg"

	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/red-onion.png",
		ImageURL(common.Ingredient{Image: &png}, ImageSmall))
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_500x500/red-onion.png",
		ImageURL(common.Ingredient{Image: &png}, ImageLarge))
	assert.Equal(t, "https://spoonacular.com/cdn/ingredients_100x100/red-onion.png",
		ImageURL(common.Ingredient{Image: &png}, ""))
	assert.Equal(t, absolute, ImageURL(common.Ingredient{Image: &absolute}, ImageSmall))
	assert.Empty(t, ImageURL(common.Ingredient{}, ImageSmall))
}
