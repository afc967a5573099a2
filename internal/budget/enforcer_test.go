package budget

import (
	"context"
	"net/http"
	"testing"

	"finance-tracker/internal/models"
	"finance-tracker/internal/util"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Expense{}, &models.SpendingLimit{},
	))
	return db
}

func seedOwnerAndCategory(t *testing.T, db *gorm.DB, categoryName string) (string, string) {
	t.Helper()
	owner := models.User{Name: "U", Email: categoryName + "@example.com", PasswordHash: "x", Role: models.RoleUser, IsActive: true}
	require.NoError(t, db.Create(&owner).Error)
	category := models.Category{Name: categoryName}
	require.NoError(t, db.Create(&category).Error)
	return owner.ID, category.ID
}

func appStatus(t *testing.T, err error) int {
	t.Helper()
	var appErr *util.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Status
}

func TestCreateLimitUnknownCategory(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, _ := seedOwnerAndCategory(t, db, "Food")

	_, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: uuid.NewString(), Amount: 100, Period: models.PeriodMonthly,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, appStatus(t, err))
}

func TestCreateLimitOverlapConflict(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")

	first, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 100, Period: models.PeriodMonthly,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LimitActive, first.Status)

	// a daily window lies inside the month: overlap
	_, err = e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 50, Period: models.PeriodDaily,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appStatus(t, err))
	assert.Contains(t, err.Error(), "Food")

	// a different category is free to have its own limit
	_, otherCat := seedOwnerAndCategory(t, db, "Travel")
	_, err = e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: otherCat, Amount: 50, Period: models.PeriodMonthly,
	})
	assert.NoError(t, err)
}

func TestCreateLimitIgnoresInactive(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")

	limit, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 100, Period: models.PeriodMonthly,
	})
	require.NoError(t, err)

	limit.Status = models.LimitInactive
	require.NoError(t, db.Save(limit).Error)

	_, err = e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 200, Period: models.PeriodMonthly,
	})
	assert.NoError(t, err, "inactive limits do not block new ones")
}

func TestRecordExpenseRequiresActiveLimit(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")

	_, err := e.RecordExpense(context.Background(), ownerID, ExpenseInput{
		CategoryID: categoryID, Amount: 10, Purpose: "coffee beans",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
	assert.Contains(t, err.Error(), "set a spending limit first")
}

func TestRecordExpenseSequentialLimitCheck(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")

	_, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 100, Period: models.PeriodMonthly,
	})
	require.NoError(t, err)

	// 60 fits under 100
	first, err := e.RecordExpense(context.Background(), ownerID, ExpenseInput{
		CategoryID: categoryID, Amount: 60, Purpose: "weekly groceries",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)

	// 60 + 50 = 110 > 100: rejected, nothing persisted
	_, err = e.RecordExpense(context.Background(), ownerID, ExpenseInput{
		CategoryID: categoryID, Amount: 50, Purpose: "more groceries",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appStatus(t, err))

	var count int64
	require.NoError(t, db.Model(&models.Expense{}).
		Where("owner_id = ?", ownerID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rejected expense must leave no partial state")
}

func TestRecordExpenseRejectionMessage(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")

	limit, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 200, Period: models.PeriodMonthly,
	})
	require.NoError(t, err)

	_, err = e.RecordExpense(context.Background(), ownerID, ExpenseInput{
		CategoryID: categoryID, Amount: 150, Purpose: "groceries",
	})
	require.NoError(t, err)

	_, err = e.RecordExpense(context.Background(), ownerID, ExpenseInput{
		CategoryID: categoryID, Amount: 60, Purpose: "more groceries",
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "200")
	assert.Contains(t, msg, "150")
	assert.Contains(t, msg, limit.StartDate.Format("2006-01-02"))
	assert.Contains(t, msg, limit.EndDate.Format("2006-01-02"))
}

func TestRecordExpenseScopedToOwner(t *testing.T) {
	db := testDB(t)
	e := NewEnforcer(db)
	ownerID, categoryID := seedOwnerAndCategory(t, db, "Food")
	otherID, _ := seedOwnerAndCategory(t, db, "Other")

	_, err := e.CreateLimit(context.Background(), ownerID, LimitInput{
		CategoryID: categoryID, Amount: 100, Period: models.PeriodMonthly,
	})
	require.NoError(t, err)

	// the other user has no limit on this category
	_, err = e.RecordExpense(context.Background(), otherID, ExpenseInput{
		CategoryID: categoryID, Amount: 10, Purpose: "their coffee",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appStatus(t, err))
}
