// Package search 將輸入轉為節流後的自動完成請求並維護建議清單
package search

import (
	"context"
	"slices"
	"sync"
	"time"

	"scavengr/internal/pkg/common"

	"go.uber.org/zap"
)

// DefaultQuietPeriod 最後一次輸入後等待的時間
const DefaultQuietPeriod = 300 * time.Millisecond

// Searcher 自動完成來源
type Searcher interface {
	Autocomplete(ctx context.Context, query string) ([]common.Ingredient, error)
}

// Adder 接收選擇的食材
type Adder interface {
	Add(ingredient common.Ingredient) bool
}

// Option 設定選項
type Option func(*Debouncer)

// WithQuietPeriod 覆寫等待時間
func WithQuietPeriod(d time.Duration) Option {
	return func(db *Debouncer) { db.quiet = d }
}

// WithOnChange 狀態改變時呼叫，不持有鎖
func WithOnChange(fn func()) Option {
	return func(db *Debouncer) { db.onChange = fn }
}

// Debouncer 搜尋節流器
//
// 每次 Search 產生新的排程 token，舊排程直接作廢；
// 每個送出的請求帶遞增序號，只接受最新序號的回應。
type Debouncer struct {
	searcher Searcher
	adder    Adder
	quiet    time.Duration
	onChange func()

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	timer       *time.Timer
	token       uint64
	seq         uint64
	query       string
	suggestions []common.Ingredient
	visible     bool
}

// New 建立節流器
func New(searcher Searcher, adder Adder, opts ...Option) *Debouncer {
	ctx, cancel := context.WithCancel(context.Background())
	d := &Debouncer{
		searcher: searcher,
		adder:    adder,
		quiet:    DefaultQuietPeriod,
		ctx:      ctx,
		cancel:   cancel,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Search 記錄查詢並重新排程；少於兩個字元時立即清空建議
func (d *Debouncer) Search(query string) {
	d.mu.Lock()
	d.invalidateLocked()
	d.query = query
	d.visible = query != ""

	if common.QueryTooShort(query) {
		d.suggestions = nil
		d.mu.Unlock()
		d.notify()
		return
	}

	token := d.token
	d.timer = time.AfterFunc(d.quiet, func() { d.fire(token, query) })
	d.mu.Unlock()
	d.notify()
}

// fire 排程到期後送出請求
func (d *Debouncer) fire(token uint64, query string) {
	d.mu.Lock()
	if token != d.token {
		d.mu.Unlock()
		return
	}
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	results, err := d.searcher.Autocomplete(d.ctx, query)

	d.mu.Lock()
	if seq != d.seq {
		d.mu.Unlock()
		common.LogDebug("Discarded stale autocomplete response", zap.String("query", query))
		return
	}
	if err != nil {
		// 自動完成為盡力而為，失敗時僅清空
		common.LogDebug("Autocomplete failed", zap.String("query", query), zap.Error(err))
		d.suggestions = nil
	} else {
		if len(results) > common.MaxSuggestions {
			results = results[:common.MaxSuggestions]
		}
		d.suggestions = slices.Clone(results)
	}
	d.mu.Unlock()
	d.notify()
}

// Select 加入選擇並一次清空查詢與建議
func (d *Debouncer) Select(ingredient common.Ingredient) bool {
	d.mu.Lock()
	d.invalidateLocked()
	d.query = ""
	d.suggestions = nil
	d.visible = false
	d.mu.Unlock()

	added := d.adder.Add(ingredient)
	d.notify()
	return added
}

// Dismiss 隱藏建議面板，保留查詢與建議；之後到達的回應不會重新開啟面板
func (d *Debouncer) Dismiss() {
	d.mu.Lock()
	d.visible = false
	d.mu.Unlock()
	d.notify()
}

// Focus 重新顯示建議面板
func (d *Debouncer) Focus() {
	d.mu.Lock()
	d.visible = true
	d.mu.Unlock()
	d.notify()
}

// Query 目前查詢
func (d *Debouncer) Query() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.query
}

// Suggestions 目前建議清單副本
func (d *Debouncer) Suggestions() []common.Ingredient {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.suggestions)
}

// Visible 面板是否顯示；查詢為空時一律隱藏
func (d *Debouncer) Visible() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible && d.query != "" && len(d.suggestions) > 0
}

// Close 取消排程與進行中的請求
func (d *Debouncer) Close() {
	d.mu.Lock()
	d.invalidateLocked()
	d.mu.Unlock()
	d.cancel()
}

// invalidateLocked 作廢待送排程與所有進行中請求的回應
func (d *Debouncer) invalidateLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.token++
	d.seq++
}

func (d *Debouncer) notify() {
	if d.onChange != nil {
		d.onChange()
	}
}
