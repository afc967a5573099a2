// Package report computes owner-scoped expense rollups: per-category
// totals nested under a single grand total for a time window.
package report

import (
	"context"
	"sort"
	"time"

	"finance-tracker/internal/models"

	"gorm.io/gorm"
)

// ExpenseLine is one contributing expense record, kept for auditability.
type ExpenseLine struct {
	ID      string    `json:"id"`
	Amount  float64   `json:"amount"`
	Purpose string    `json:"purpose"`
	Date    time.Time `json:"date"`
}

// CategoryRollup is the per-category bucket of a rollup.
type CategoryRollup struct {
	CategoryID string        `json:"categoryId"`
	Name       string        `json:"name"`
	Total      float64       `json:"total"`
	Expenses   []ExpenseLine `json:"expenses"`
}

// Rollup is a two-level aggregation: the grand total is the sum of the
// per-category totals.
type Rollup struct {
	Total      float64          `json:"total"`
	Categories []CategoryRollup `json:"categories"`
}

// Reporter aggregates expenses for summary endpoints.
type Reporter struct {
	DB *gorm.DB
}

func NewReporter(db *gorm.DB) *Reporter {
	return &Reporter{DB: db}
}

// DailyTotal rolls up the owner's expenses for the current calendar day.
func (r *Reporter) DailyTotal(ctx context.Context, ownerID string) (Rollup, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	end := start.Add(24*time.Hour - time.Millisecond)
	return r.rollup(ctx, ownerID, start, end)
}

// CategoryTotal rolls up the owner's expenses for the current calendar month.
func (r *Reporter) CategoryTotal(ctx context.Context, ownerID string) (Rollup, error) {
	now := time.Now()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return r.rollup(ctx, ownerID, start, end)
}

// rollup groups the window's expenses by category. An empty window is a
// valid zero result, never an error.
func (r *Reporter) rollup(ctx context.Context, ownerID string, start, end time.Time) (Rollup, error) {
	result := Rollup{Categories: []CategoryRollup{}}

	var expenses []models.Expense
	if err := r.DB.WithContext(ctx).
		Where("owner_id = ? AND date >= ? AND date <= ?", ownerID, start, end).
		Preload("Category").
		Order("date ASC").
		Find(&expenses).Error; err != nil {
		return result, err
	}

	buckets := make(map[string]*CategoryRollup)
	for i := range expenses {
		e := &expenses[i]

		bucket, ok := buckets[e.CategoryID]
		if !ok {
			bucket = &CategoryRollup{CategoryID: e.CategoryID}
			if e.Category != nil {
				bucket.Name = e.Category.Name
			}
			buckets[e.CategoryID] = bucket
		}
		bucket.Total += e.Amount
		bucket.Expenses = append(bucket.Expenses, ExpenseLine{
			ID:      e.ID,
			Amount:  e.Amount,
			Purpose: e.Purpose,
			Date:    e.Date,
		})
		result.Total += e.Amount
	}

	for _, bucket := range buckets {
		result.Categories = append(result.Categories, *bucket)
	}

	// deterministic order: biggest spender first, ties on category id
	sort.Slice(result.Categories, func(i, j int) bool {
		a, b := result.Categories[i], result.Categories[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return a.CategoryID < b.CategoryID
	})

	return result, nil
}
