package handler

import (
	"errors"
	"net/http"

	"finance-tracker/internal/budget"
	"finance-tracker/internal/models"
	"finance-tracker/internal/query"
	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const limitsBaseURL = "/api/v1/spending-limits"

// LimitHandler serves owner-scoped spending-limit CRUD. Creation goes
// through the budget enforcer for window computation and overlap checks.
type LimitHandler struct {
	DB       *gorm.DB
	Enforcer *budget.Enforcer
}

func NewLimitHandler(db *gorm.DB) *LimitHandler {
	return &LimitHandler{
		DB:       db,
		Enforcer: budget.NewEnforcer(db),
	}
}

type createLimitReq struct {
	CategoryID string  `json:"categoryId" binding:"required"`
	Amount     float64 `json:"amount" binding:"gte=0"`
	Period     string  `json:"period" binding:"required,oneof=daily weekly monthly"`
}

func (h *LimitHandler) Create(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req createLimitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}
	if !util.IsUUID(req.CategoryID) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid category id")
		return
	}

	limit, err := h.Enforcer.CreateLimit(c.Request.Context(), user.ID, budget.LimitInput{
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		Period:     req.Period,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}

	_ = h.DB.Preload("Category").First(limit, "id = ?", limit.ID).Error

	util.Created(c, util.Response{
		"limit": limit,
	})
}

func (h *LimitHandler) List(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var limits []models.SpendingLimit
	pagination, err := query.NewList(
		h.DB.Model(&models.SpendingLimit{}).Where("owner_id = ?", user.ID),
		limitSpec,
		c.Request.URL.Query(),
		limitsBaseURL,
	).
		Filter().
		Search().
		Sort().
		SelectFields().
		Populate().
		Paginate().
		Execute(c.Request.Context(), &limits)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"data":       limits,
		"pagination": pagination,
	})
}

func (h *LimitHandler) Get(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var limit models.SpendingLimit
	found, err := query.NewSingle(
		h.DB.Model(&models.SpendingLimit{}),
		limitSpec,
		map[string]interface{}{"id": id, "owner_id": user.ID},
		c.Request.URL.Query(),
	).
		Populate().
		Execute(c.Request.Context(), &limit)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if !found {
		util.Fail(c, util.NotFound("Spending limit not found"))
		return
	}

	util.Success(c, util.Response{
		"limit": limit,
	})
}

type updateLimitReq struct {
	Amount *float64 `json:"amount" binding:"omitempty,gte=0"`
	Period *string  `json:"period" binding:"omitempty,oneof=daily weekly monthly"`
	Status *string  `json:"status" binding:"omitempty,oneof=active inactive"`
}

func (h *LimitHandler) Update(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req updateLimitReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	var limit models.SpendingLimit
	if err := h.DB.Where("id = ? AND owner_id = ?", id, user.ID).First(&limit).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.NotFound("Spending limit not found"))
		} else {
			util.Fail(c, err)
		}
		return
	}

	// plain reassignment; the window keeps its original bounds
	if req.Amount != nil {
		limit.Amount = *req.Amount
	}
	if req.Period != nil {
		limit.Period = *req.Period
	}
	if req.Status != nil {
		limit.Status = *req.Status
	}
	if err := h.DB.Save(&limit).Error; err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"limit": limit,
	})
}

func (h *LimitHandler) Delete(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	id, ok := requireID(c)
	if !ok {
		return
	}

	res := h.DB.Where("id = ? AND owner_id = ?", id, user.ID).Delete(&models.SpendingLimit{})
	if res.Error != nil {
		util.Fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Fail(c, util.NotFound("Spending limit not found"))
		return
	}

	util.Success(c, util.Response{
		"message": "Spending limit deleted",
	})
}
