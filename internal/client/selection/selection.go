// Package selection 使用者選擇的食材集合，以 id 去重並保留加入順序
package selection

import (
	"slices"

	"scavengr/internal/pkg/common"

	"github.com/samber/lo"
)

// Set 食材選擇集合，非並行安全，由呼叫端同步
type Set struct {
	items []common.Ingredient
}

// New 建立空集合
func New() *Set {
	return &Set{}
}

// Add 加入食材，id 已存在時不變動並回傳 false
func (s *Set) Add(ingredient common.Ingredient) bool {
	if s.Contains(ingredient.ID) {
		return false
	}
	s.items = append(s.items, ingredient)
	return true
}

// Remove 移除指定 id，不存在時回傳 false
func (s *Set) Remove(id int) bool {
	idx := slices.IndexFunc(s.items, func(item common.Ingredient) bool { return item.ID == id })
	if idx < 0 {
		return false
	}
	s.items = slices.Delete(s.items, idx, idx+1)
	return true
}

// Contains 是否已選擇
func (s *Set) Contains(id int) bool {
	return lo.ContainsBy(s.items, func(item common.Ingredient) bool { return item.ID == id })
}

// Items 依加入順序回傳副本
func (s *Set) Items() []common.Ingredient {
	return slices.Clone(s.items)
}

// Names 依加入順序回傳名稱，用於組 prompt
func (s *Set) Names() []string {
	return lo.Map(s.items, func(item common.Ingredient, _ int) string { return item.Name })
}

// Len 集合大小
func (s *Set) Len() int {
	return len(s.items)
}

// Clear 清空
func (s *Set) Clear() {
	s.items = nil
}
