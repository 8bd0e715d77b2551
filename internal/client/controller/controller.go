// Package controller 食譜請求的狀態機：Idle → Generating → Success / Error
package controller

import (
	"context"
	"sync"

	"scavengr/internal/client/selection"
	"scavengr/internal/pkg/common"

	"go.uber.org/zap"
)

// GenericErrorMessage 不區分失敗種類的使用者訊息
const GenericErrorMessage = "Failed to generate recipe. Please try again."

// State 請求狀態
type State int

const (
	Idle State = iota
	Generating
	Success
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Generator 食譜生成呼叫
type Generator interface {
	GenerateRecipe(ctx context.Context, ingredients []string) (*common.Recipe, error)
}

// Snapshot 某一時刻的完整狀態
type Snapshot struct {
	State     State
	Selection []common.Ingredient
	Recipe    *common.Recipe
	Error     string
}

// Option 設定選項
type Option func(*Controller)

// WithOnChange 每次狀態改變後以快照呼叫，不持有鎖
func WithOnChange(fn func(Snapshot)) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Controller 協調選擇集合與生成呼叫
type Controller struct {
	generator Generator
	onChange  func(Snapshot)

	mu        sync.Mutex
	selection *selection.Set
	state     State
	recipe    *common.Recipe
	errMsg    string
	epoch     uint64
}

// New 建立狀態機，初始為 Idle 且選擇為空
func New(generator Generator, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		selection: selection.New(),
		state:     Idle,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add 加入食材；Generating 期間選擇集合唯讀
func (c *Controller) Add(ingredient common.Ingredient) bool {
	c.mu.Lock()
	if c.state == Generating {
		c.mu.Unlock()
		return false
	}
	added := c.selection.Add(ingredient)
	c.mu.Unlock()
	if added {
		c.notify()
	}
	return added
}

// Remove 移除食材；Generating 期間不允許
func (c *Controller) Remove(id int) bool {
	c.mu.Lock()
	if c.state == Generating {
		c.mu.Unlock()
		return false
	}
	removed := c.selection.Remove(id)
	c.mu.Unlock()
	if removed {
		c.notify()
	}
	return removed
}

// Generate 以目前選擇生成食譜並阻塞至結果返回。
// 已在 Generating 或選擇為空時不做任何事並回傳 false。
func (c *Controller) Generate(ctx context.Context) bool {
	return c.start(ctx, false)
}

// Retry 僅在 Error 狀態下以不變的選擇重新生成
func (c *Controller) Retry(ctx context.Context) bool {
	return c.start(ctx, true)
}

func (c *Controller) start(ctx context.Context, retry bool) bool {
	c.mu.Lock()
	if c.state == Generating || c.selection.Len() == 0 || (retry && c.state != Error) {
		c.mu.Unlock()
		return false
	}
	c.state = Generating
	c.recipe = nil
	c.errMsg = ""
	c.epoch++
	epoch := c.epoch
	names := c.selection.Names()
	c.mu.Unlock()
	c.notify()

	recipe, err := c.generator.GenerateRecipe(ctx, names)

	c.mu.Lock()
	if epoch != c.epoch {
		// 已 Reset，結果丟棄
		c.mu.Unlock()
		common.LogDebug("Discarded result of abandoned generation", zap.Uint64("epoch", epoch))
		return true
	}
	if err != nil {
		common.LogWarn("Recipe generation failed",
			zap.Error(err),
			zap.Bool("parse_error", common.IsParseError(err)),
			zap.Int("ingredients_count", len(names)),
		)
		c.state = Error
		c.errMsg = GenericErrorMessage
	} else {
		c.state = Success
		c.recipe = recipe
	}
	c.mu.Unlock()
	c.notify()
	return true
}

// Reset 任何狀態皆回到 Idle，清空選擇與結果；進行中的生成結果將被丟棄
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = Idle
	c.selection.Clear()
	c.recipe = nil
	c.errMsg = ""
	c.epoch++
	c.mu.Unlock()
	c.notify()
}

// Snapshot 目前狀態
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		State:     c.state,
		Selection: c.selection.Items(),
		Recipe:    c.recipe,
		Error:     c.errMsg,
	}
}

func (c *Controller) notify() {
	if c.onChange != nil {
		c.onChange(c.Snapshot())
	}
}
