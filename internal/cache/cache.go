// Package cache provides advisory memoization for expensive monthly
// aggregation queries. A miss always triggers a correct recomputation,
// so every consumer must treat the cache as optional.
package cache

import (
	"fmt"
	"time"
)

// MonthlyTotals memoizes per-user monthly expense totals (in cents)
// keyed by (user, year, month). Expense and budget writes for a month
// must invalidate that month's key.
type MonthlyTotals struct {
	lru *LRU[int64]
}

// NewMonthlyTotals creates a MonthlyTotals cache with the given capacity
// and entry TTL.
func NewMonthlyTotals(maxSize int, ttl time.Duration) *MonthlyTotals {
	return &MonthlyTotals{lru: NewLRU[int64](maxSize, ttl)}
}

// Get returns the memoized total for the month, if present.
func (m *MonthlyTotals) Get(userID string, year, month int) (int64, bool) {
	if m == nil {
		return 0, false
	}
	return m.lru.Get(key(userID, year, month))
}

// Set memoizes the total for the month.
func (m *MonthlyTotals) Set(userID string, year, month int, total int64) {
	if m == nil {
		return
	}
	m.lru.Set(key(userID, year, month), total)
}

// Invalidate drops the memoized total for the month.
func (m *MonthlyTotals) Invalidate(userID string, year, month int) {
	if m == nil {
		return
	}
	m.lru.Delete(key(userID, year, month))
}

func key(userID string, year, month int) string {
	return fmt.Sprintf("%s:%d:%02d", userID, year, month)
}
