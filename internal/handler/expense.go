package handler

import (
	"errors"
	"net/http"
	"strings"

	"finance-tracker/internal/budget"
	"finance-tracker/internal/models"
	"finance-tracker/internal/query"
	"finance-tracker/internal/report"
	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const expensesBaseURL = "/api/v1/expenses"

// ExpenseHandler serves owner-scoped expense CRUD and the summary reports.
// Creation goes through the budget enforcer, which can veto the write.
type ExpenseHandler struct {
	DB       *gorm.DB
	Enforcer *budget.Enforcer
	Reporter *report.Reporter
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{
		DB:       db,
		Enforcer: budget.NewEnforcer(db),
		Reporter: report.NewReporter(db),
	}
}

type expenseReq struct {
	Amount     float64 `json:"amount" binding:"required,gt=0"`
	CategoryID string  `json:"categoryId" binding:"required"`
	Purpose    string  `json:"purpose" binding:"required"`
}

func (h *ExpenseHandler) validate(req *expenseReq) error {
	req.Purpose = strings.TrimSpace(req.Purpose)
	if !util.IsUUID(req.CategoryID) {
		return util.BadRequest("invalid category id")
	}
	if err := util.ValidateAmount(req.Amount); err != nil {
		return util.BadRequest(err.Error())
	}
	if err := util.ValidatePurpose(req.Purpose); err != nil {
		return util.BadRequest(err.Error())
	}
	return nil
}

func (h *ExpenseHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.validate(&req); err != nil {
		util.Fail(c, err)
		return
	}

	expense, err := h.Enforcer.RecordExpense(c.Request.Context(), user.ID, budget.ExpenseInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Purpose:    req.Purpose,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}

	// echo with the category joined
	_ = h.DB.Preload("Category").First(expense, "id = ?", expense.ID).Error

	util.Created(c, util.Response{
		"expense": expense,
	})
}

func (h *ExpenseHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var expenses []models.Expense
	pagination, err := query.NewList(
		h.DB.Model(&models.Expense{}).Where("owner_id = ?", user.ID),
		expenseSpec,
		c.Request.URL.Query(),
		expensesBaseURL,
	).
		Filter().
		Search().
		Sort().
		SelectFields().
		Populate().
		Paginate().
		Execute(c.Request.Context(), &expenses)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"data":       expenses,
		"pagination": pagination,
	})
}

func (h *ExpenseHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var expense models.Expense
	found, err := query.NewSingle(
		h.DB.Model(&models.Expense{}),
		expenseSpec,
		map[string]interface{}{"id": id, "owner_id": user.ID},
		c.Request.URL.Query(),
	).
		Populate().
		Execute(c.Request.Context(), &expense)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if !found {
		util.Fail(c, util.NotFound("Expense not found"))
		return
	}

	util.Success(c, util.Response{
		"expense": expense,
	})
}

func (h *ExpenseHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if err := h.validate(&req); err != nil {
		util.Fail(c, err)
		return
	}

	var expense models.Expense
	if err := h.DB.Where("id = ? AND owner_id = ?", id, user.ID).First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.NotFound("Expense not found"))
		} else {
			util.Fail(c, err)
		}
		return
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.NotFound("Category not found"))
		} else {
			util.Fail(c, err)
		}
		return
	}

	// full replace: ownership and date stay, the payload fields are reassigned
	expense.Amount = req.Amount
	expense.CategoryID = req.CategoryID
	expense.Purpose = req.Purpose
	if err := h.DB.Save(&expense).Error; err != nil {
		util.Fail(c, err)
		return
	}

	expense.Category = &category
	util.Success(c, util.Response{
		"expense": expense,
	})
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND owner_id = ?", id, user.ID).Delete(&models.Expense{})
	if res.Error != nil {
		util.Fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Fail(c, util.NotFound("Expense not found"))
		return
	}

	util.Success(c, util.Response{
		"message": "Expense deleted",
	})
}

// DailyTotal reports today's rollup for the current user.
func (h *ExpenseHandler) DailyTotal(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	rollup, err := h.Reporter.DailyTotal(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"total":      rollup.Total,
		"categories": rollup.Categories,
	})
}

// CategoryTotal reports the current month's per-category rollup.
func (h *ExpenseHandler) CategoryTotal(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	rollup, err := h.Reporter.CategoryTotal(c.Request.Context(), user.ID)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"total":      rollup.Total,
		"categories": rollup.Categories,
	})
}
