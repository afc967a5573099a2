package query

import (
	"context"
	"net/url"
	"testing"

	"finance-tracker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleLookup(t *testing.T) {
	db := testDB(t)
	owner, category := seedExpenses(t, db, 1)

	var target models.Expense
	require.NoError(t, db.First(&target, "owner_id = ?", owner.ID).Error)

	var out models.Expense
	found, err := NewSingle(
		db.Model(&models.Expense{}),
		testSpec,
		map[string]interface{}{"id": target.ID, "owner_id": owner.ID},
		url.Values{},
	).Populate().Execute(context.Background(), &out)

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, target.ID, out.ID)
	require.NotNil(t, out.Category)
	assert.Equal(t, category.Name, out.Category.Name)
	require.NotNil(t, out.Owner)
}

func TestSingleOwnerScoping(t *testing.T) {
	db := testDB(t)
	owner, _ := seedExpenses(t, db, 1)

	var target models.Expense
	require.NoError(t, db.First(&target, "owner_id = ?", owner.ID).Error)

	var out models.Expense
	found, err := NewSingle(
		db.Model(&models.Expense{}),
		testSpec,
		map[string]interface{}{"id": target.ID, "owner_id": uuid.NewString()},
		url.Values{},
	).Populate().Execute(context.Background(), &out)

	require.NoError(t, err)
	assert.False(t, found, "someone else's record must read as not found")
}

func TestSingleNotFound(t *testing.T) {
	db := testDB(t)
	seedExpenses(t, db, 0)

	var out models.Expense
	found, err := NewSingle(
		db.Model(&models.Expense{}),
		testSpec,
		map[string]interface{}{"id": uuid.NewString()},
		url.Values{},
	).Populate().Execute(context.Background(), &out)

	require.NoError(t, err)
	assert.False(t, found)
}

func TestSingleExpandFalseSkipsJoins(t *testing.T) {
	db := testDB(t)
	owner, _ := seedExpenses(t, db, 1)

	var target models.Expense
	require.NoError(t, db.First(&target, "owner_id = ?", owner.ID).Error)

	var out models.Expense
	found, err := NewSingle(
		db.Model(&models.Expense{}),
		testSpec,
		map[string]interface{}{"id": target.ID},
		url.Values{"expand": {"false"}},
	).Populate().Execute(context.Background(), &out)

	require.NoError(t, err)
	require.True(t, found)
	assert.Nil(t, out.Category)
	assert.Nil(t, out.Owner)
	assert.NotEmpty(t, out.CategoryID, "raw foreign key stays")
}

func TestSingleFieldSelection(t *testing.T) {
	db := testDB(t)
	owner, _ := seedExpenses(t, db, 1)

	var target models.Expense
	require.NoError(t, db.First(&target, "owner_id = ?", owner.ID).Error)

	var out models.Expense
	found, err := NewSingle(
		db.Model(&models.Expense{}),
		testSpec,
		map[string]interface{}{"id": target.ID},
		url.Values{"fields": {"amount"}, "expand": {"false"}},
	).Populate().Execute(context.Background(), &out)

	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, target.Amount, out.Amount)
	assert.Empty(t, out.Purpose)
}
