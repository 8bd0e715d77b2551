package controller

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"scavengr/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	calls atomic.Int32
	gate  chan struct{}

	mu     sync.Mutex
	inputs [][]string
	recipe *common.Recipe
	err    error
}

func (f *fakeGenerator) GenerateRecipe(_ context.Context, ingredients []string) (*common.Recipe, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.inputs = append(f.inputs, ingredients)
	recipe, err := f.recipe, f.err
	f.mu.Unlock()

	if f.gate != nil {
		<-f.gate
	}
	return recipe, err
}

func (f *fakeGenerator) setResult(recipe *common.Recipe, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recipe, f.err = recipe, err
}

func sampleRecipe() *common.Recipe {
	return &common.Recipe{
		RecipeName:   "Tomato Onion Pasta",
		Description:  "Quick.",
		Ingredients:  []string{"200g pasta", "2 tomatoes", "1 onion"},
		Instructions: []string{"Boil.", "Toss."},
		CookingTime:  "25 minutes",
		Difficulty:   "Easy",
		Serves:       "2 people",
	}
}

func scenarioSelection(c *Controller) {
	c.Add(common.Ingredient{ID: 1, Name: "tomato"})
	c.Add(common.Ingredient{ID: 2, Name: "onion"})
	c.Add(common.Ingredient{ID: 3, Name: "pasta"})
}

func TestInitialState(t *testing.T) {
	snap := New(&fakeGenerator{}).Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Empty(t, snap.Selection)
	assert.Nil(t, snap.Recipe)
	assert.Empty(t, snap.Error)
}

func TestGenerateSuccess(t *testing.T) {
	gen := &fakeGenerator{recipe: sampleRecipe()}
	c := New(gen)
	scenarioSelection(c)

	require.True(t, c.Generate(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, Success, snap.State)
	require.NotNil(t, snap.Recipe)
	assert.NotEmpty(t, snap.Recipe.Ingredients)
	assert.NotEmpty(t, snap.Recipe.Instructions)
	assert.Equal(t, [][]string{{"tomato", "onion", "pasta"}}, gen.inputs)
}

func TestGenerateWithEmptySelectionIsNoop(t *testing.T) {
	gen := &fakeGenerator{recipe: sampleRecipe()}
	c := New(gen)

	assert.False(t, c.Generate(context.Background()))
	assert.Equal(t, Idle, c.Snapshot().State)
	assert.Equal(t, int32(0), gen.calls.Load())
}

func TestFailureShowsGenericMessageAndKeepsSelection(t *testing.T) {
	gen := &fakeGenerator{err: common.NewParseError(errors.New("invalid character 'S'"))}
	c := New(gen)
	scenarioSelection(c)

	c.Generate(context.Background())

	snap := c.Snapshot()
	assert.Equal(t, Error, snap.State)
	assert.Equal(t, GenericErrorMessage, snap.Error)
	assert.Nil(t, snap.Recipe)
	assert.Len(t, snap.Selection, 3)
}

func TestRetryOnlyFromError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("boom")}
	c := New(gen)
	scenarioSelection(c)

	assert.False(t, c.Retry(context.Background()), "retry from idle")

	c.Generate(context.Background())
	require.Equal(t, Error, c.Snapshot().State)

	gen.setResult(sampleRecipe(), nil)
	require.True(t, c.Retry(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, Success, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, int32(2), gen.calls.Load())
	assert.Equal(t, gen.inputs[0], gen.inputs[1])

	assert.False(t, c.Retry(context.Background()), "retry from success")
}

func TestSingleFlight(t *testing.T) {
	gen := &fakeGenerator{recipe: sampleRecipe(), gate: make(chan struct{})}
	c := New(gen)
	scenarioSelection(c)

	done := make(chan bool)
	go func() { done <- c.Generate(context.Background()) }()
	require.Eventually(t, func() bool { return c.Snapshot().State == Generating }, time.Second, time.Millisecond)

	assert.False(t, c.Generate(context.Background()))
	assert.False(t, c.Retry(context.Background()))
	assert.Equal(t, int32(1), gen.calls.Load())

	close(gen.gate)
	assert.True(t, <-done)
	assert.Equal(t, Success, c.Snapshot().State)
	assert.Equal(t, int32(1), gen.calls.Load())
}

func TestSelectionFrozenWhileGenerating(t *testing.T) {
	gen := &fakeGenerator{recipe: sampleRecipe(), gate: make(chan struct{})}
	c := New(gen)
	scenarioSelection(c)

	done := make(chan bool)
	go func() { done <- c.Generate(context.Background()) }()
	require.Eventually(t, func() bool { return c.Snapshot().State == Generating }, time.Second, time.Millisecond)

	assert.False(t, c.Add(common.Ingredient{ID: 4, Name: "garlic"}))
	assert.False(t, c.Remove(1))
	assert.Len(t, c.Snapshot().Selection, 3)

	close(gen.gate)
	<-done
	assert.True(t, c.Add(common.Ingredient{ID: 4, Name: "garlic"}))
}

func TestResetFromEveryState(t *testing.T) {
	tests := []struct {
		name  string
		setup func(c *Controller, gen *fakeGenerator)
	}{
		{name: "idle", setup: func(c *Controller, gen *fakeGenerator) {}},
		{name: "success", setup: func(c *Controller, gen *fakeGenerator) {
			c.Generate(context.Background())
		}},
		{name: "error", setup: func(c *Controller, gen *fakeGenerator) {
			gen.setResult(nil, errors.New("boom"))
			c.Generate(context.Background())
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{recipe: sampleRecipe()}
			c := New(gen)
			scenarioSelection(c)
			tt.setup(c, gen)

			c.Reset()

			snap := c.Snapshot()
			assert.Equal(t, Idle, snap.State)
			assert.Empty(t, snap.Selection)
			assert.Nil(t, snap.Recipe)
			assert.Empty(t, snap.Error)
		})
	}
}

func TestResetDiscardsInFlightResult(t *testing.T) {
	gen := &fakeGenerator{recipe: sampleRecipe(), gate: make(chan struct{})}
	c := New(gen)
	scenarioSelection(c)

	done := make(chan bool)
	go func() { done <- c.Generate(context.Background()) }()
	require.Eventually(t, func() bool { return c.Snapshot().State == Generating }, time.Second, time.Millisecond)

	c.Reset()
	assert.Equal(t, Idle, c.Snapshot().State)

	close(gen.gate)
	<-done

	snap := c.Snapshot()
	assert.Equal(t, Idle, snap.State)
	assert.Nil(t, snap.Recipe)
	assert.Empty(t, snap.Selection)
}

func TestAddIdempotentAndRemoveMissing(t *testing.T) {
	c := New(&fakeGenerator{})

	assert.True(t, c.Add(common.Ingredient{ID: 1, Name: "tomato"}))
	assert.False(t, c.Add(common.Ingredient{ID: 1, Name: "tomato"}))
	assert.False(t, c.Remove(99))
	assert.Len(t, c.Snapshot().Selection, 1)
}

func TestOnChangeReceivesSnapshots(t *testing.T) {
	var states []State
	c := New(&fakeGenerator{recipe: sampleRecipe()}, WithOnChange(func(s Snapshot) {
		states = append(states, s.State)
	}))
	c.Add(common.Ingredient{ID: 1, Name: "tomato"})
	c.Generate(context.Background())
	c.Reset()

	assert.Equal(t, []State{Idle, Generating, Success, Idle}, states)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "generating", Generating.String())
	assert.Equal(t, "unknown", State(42).String())
}
