package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"finance-tracker/internal/budget"
	"finance-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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
		&models.User{}, &models.Category{}, &models.Expense{},
		&models.SpendingLimit{}, &models.AuditLog{},
	))
	return db
}

func testUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := &models.User{
		Name: "Tester", Email: role + "@example.com",
		PasswordHash: "x", Role: role, IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func jsonCtx(t *testing.T, method, target string, body interface{}, user *models.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if user != nil {
		c.Set("currentUser", user)
	}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCategoryCreateDuplicateConflict(t *testing.T) {
	db := testDB(t)
	h := NewCategoryHandler(db)

	c, w := jsonCtx(t, http.MethodPost, "/api/v1/categories", gin.H{"name": "Food"}, nil)
	h.Create(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	c, w = jsonCtx(t, http.MethodPost, "/api/v1/categories", gin.H{"name": "Food"}, nil)
	h.Create(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCategoryCreateShortNameRejected(t *testing.T) {
	db := testDB(t)
	h := NewCategoryHandler(db)

	c, w := jsonCtx(t, http.MethodPost, "/api/v1/categories", gin.H{"name": "a"}, nil)
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryListEnvelope(t *testing.T) {
	db := testDB(t)
	h := NewCategoryHandler(db)
	for _, name := range []string{"Food", "Travel", "Health"} {
		require.NoError(t, db.Create(&models.Category{Name: name}).Error)
	}

	c, w := jsonCtx(t, http.MethodGet, "/api/v1/categories?limit=2", nil, nil)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["code"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	rows, ok := data["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 2)

	pagination, ok := data["pagination"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), pagination["page"])
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, float64(2), pagination["totalPage"])
	assert.Nil(t, pagination["prevPage"])
	assert.NotNil(t, pagination["nextPage"])
}

func TestCategoryResponseHidesVersion(t *testing.T) {
	db := testDB(t)
	h := NewCategoryHandler(db)
	require.NoError(t, db.Create(&models.Category{Name: "Food"}).Error)

	c, w := jsonCtx(t, http.MethodGet, "/api/v1/categories", nil, nil)
	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "version")
	assert.NotContains(t, w.Body.String(), "Version")
}

func TestExpenseCreateWithoutLimitRejected(t *testing.T) {
	db := testDB(t)
	h := NewExpenseHandler(db)
	user := testUser(t, db, models.RoleUser)
	category := models.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)

	c, w := jsonCtx(t, http.MethodPost, "/api/v1/expenses", gin.H{
		"amount": 10.0, "categoryId": category.ID, "purpose": "coffee beans",
	}, user)
	h.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "spending limit")
}

func TestExpenseCreateAndGet(t *testing.T) {
	db := testDB(t)
	h := NewExpenseHandler(db)
	user := testUser(t, db, models.RoleUser)
	category := models.Category{Name: "Food"}
	require.NoError(t, db.Create(&category).Error)

	_, err := budget.NewEnforcer(db).CreateLimit(
		context.Background(), user.ID,
		budget.LimitInput{CategoryID: category.ID, Amount: 100, Period: models.PeriodMonthly},
	)
	require.NoError(t, err)

	c, w := jsonCtx(t, http.MethodPost, "/api/v1/expenses", gin.H{
		"amount": 42.5, "categoryId": category.ID, "purpose": "weekly groceries",
	}, user)
	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var expense models.Expense
	require.NoError(t, db.First(&expense, "owner_id = ?", user.ID).Error)

	c, w = jsonCtx(t, http.MethodGet, "/api/v1/expenses/"+expense.ID, nil, user)
	c.Params = gin.Params{{Key: "id", Value: expense.ID}}
	h.Get(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "weekly groceries")

	// another user cannot read it
	other := testUser(t, db, models.RoleAdmin)
	c, w = jsonCtx(t, http.MethodGet, "/api/v1/expenses/"+expense.ID, nil, other)
	c.Params = gin.Params{{Key: "id", Value: expense.ID}}
	h.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpenseGetMalformedID(t *testing.T) {
	db := testDB(t)
	h := NewExpenseHandler(db)
	user := testUser(t, db, models.RoleUser)

	c, w := jsonCtx(t, http.MethodGet, "/api/v1/expenses/abc", nil, user)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.Get(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExpenseHandlersRequireUser(t *testing.T) {
	db := testDB(t)
	h := NewExpenseHandler(db)

	c, w := jsonCtx(t, http.MethodGet, "/api/v1/expenses", nil, nil)
	h.List(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
