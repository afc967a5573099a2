// Package budget owns the spending-limit lifecycle: window computation,
// overlap prevention, and the pre-commit running-total check applied before
// an expense is persisted.
package budget

import (
	"context"
	"errors"
	"fmt"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/util"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Enforcer applies spending-limit policy for one document store.
type Enforcer struct {
	DB *gorm.DB
}

func NewEnforcer(db *gorm.DB) *Enforcer {
	return &Enforcer{DB: db}
}

// LimitInput is the validated payload for a new spending limit.
type LimitInput struct {
	CategoryID string
	Amount     float64
	Period     string
}

// ExpenseInput is the validated payload for a new expense.
type ExpenseInput struct {
	CategoryID string
	Amount     float64
	Purpose    string
}

// CreateLimit resolves the category, computes the period window, rejects
// overlapping active limits for the same (owner, category), and persists
// the new limit as active.
func (e *Enforcer) CreateLimit(ctx context.Context, ownerID string, in LimitInput) (*models.SpendingLimit, error) {
	start, end := PeriodWindow(in.Period, time.Now())

	limit := models.SpendingLimit{
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Period:     in.Period,
		Status:     models.LimitActive,
		StartDate:  start,
		EndDate:    end,
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFound("Category not found")
			}
			return err
		}

		// interval overlap: existing.start <= newEnd AND existing.end >= newStart
		var existing models.SpendingLimit
		err := tx.Where(
			"owner_id = ? AND category_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			ownerID, in.CategoryID, models.LimitActive, end, start,
		).First(&existing).Error
		if err == nil {
			return util.Conflict(fmt.Sprintf(
				"A spending limit already exists for %s from %s to %s",
				category.Name,
				existing.StartDate.Format(dateLayout),
				existing.EndDate.Format(dateLayout),
			))
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(&limit).Error
	})
	if err != nil {
		return nil, err
	}
	return &limit, nil
}

// RecordExpense checks the new expense against the active limit covering
// "now" and persists it when allowed. Check and insert run in one store
// transaction, so two concurrent creations against the same limit cannot
// both slip under it.
func (e *Enforcer) RecordExpense(ctx context.Context, ownerID string, in ExpenseInput) (*models.Expense, error) {
	now := time.Now()
	expense := models.Expense{
		OwnerID:    ownerID,
		CategoryID: in.CategoryID,
		Amount:     in.Amount,
		Purpose:    in.Purpose,
		Date:       now,
	}

	err := e.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, "id = ?", in.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFound("Category not found")
			}
			return err
		}

		// status and window are independent signals; both must hold
		var limit models.SpendingLimit
		err := tx.Where(
			"owner_id = ? AND category_id = ? AND status = ? AND start_date <= ? AND end_date >= ?",
			ownerID, in.CategoryID, models.LimitActive, now, now,
		).First(&limit).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.BadRequest("No active spending limit found for this category. Please set a spending limit first.")
			}
			return err
		}

		var currentTotal float64
		if err := tx.Model(&models.Expense{}).
			Where("owner_id = ? AND category_id = ? AND date >= ? AND date <= ?",
				ownerID, in.CategoryID, limit.StartDate, limit.EndDate).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&currentTotal).Error; err != nil {
			return err
		}

		if currentTotal+in.Amount > limit.Amount {
			return util.BadRequest(fmt.Sprintf(
				"This expense would exceed your spending limit of %g for this category. Current total: %g. Period: %s to %s",
				limit.Amount,
				currentTotal,
				limit.StartDate.Format(dateLayout),
				limit.EndDate.Format(dateLayout),
			))
		}

		return tx.Create(&expense).Error
	})
	if err != nil {
		return nil, err
	}
	return &expense, nil
}
