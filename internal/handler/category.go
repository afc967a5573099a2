package handler

import (
	"errors"
	"net/http"
	"strings"

	"finance-tracker/internal/models"
	"finance-tracker/internal/query"
	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const categoriesBaseURL = "/api/v1/categories"

// CategoryHandler serves the category collection. Mutation is admin-only
// (enforced by the route table); reads are public.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"max=255"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateCategoryName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var count int64
	if err := h.DB.Model(&models.Category{}).
		Where("name = ?", req.Name).
		Count(&count).Error; err != nil {
		util.Fail(c, err)
		return
	}
	if count > 0 {
		util.Fail(c, util.Conflict("Category already exists"))
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Fail(c, err)
		return
	}

	util.Created(c, util.Response{
		"category": category,
	})
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	pagination, err := query.NewList(
		h.DB.Model(&models.Category{}),
		categorySpec,
		c.Request.URL.Query(),
		categoriesBaseURL,
	).
		Filter().
		Search().
		Sort().
		SelectFields().
		Paginate().
		Execute(c.Request.Context(), &categories)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"data":       categories,
		"pagination": pagination,
	})
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	var category models.Category
	found, err := query.NewSingle(
		h.DB.Model(&models.Category{}),
		categorySpec,
		map[string]interface{}{"id": id},
		c.Request.URL.Query(),
	).Execute(c.Request.Context(), &category)
	if err != nil {
		util.Fail(c, err)
		return
	}
	if !found {
		util.Fail(c, util.NotFound("Category not found"))
		return
	}

	util.Success(c, util.Response{
		"category": category,
	})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if err := util.ValidateCategoryName(req.Name); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}

	var category models.Category
	if err := h.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Fail(c, util.NotFound("Category not found"))
		} else {
			util.Fail(c, err)
		}
		return
	}

	if req.Name != category.Name {
		var count int64
		if err := h.DB.Model(&models.Category{}).
			Where("name = ? AND id <> ?", req.Name, id).
			Count(&count).Error; err != nil {
			util.Fail(c, err)
			return
		}
		if count > 0 {
			util.Fail(c, util.Conflict("Category name already exists"))
			return
		}
	}

	category.Name = req.Name
	category.Description = strings.TrimSpace(req.Description)
	if err := h.DB.Save(&category).Error; err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"category": category,
	})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := requireID(c)
	if !ok {
		return
	}

	// no cascade: refuse deletion while expenses or limits still
	// reference the category
	var refs int64
	if err := h.DB.Model(&models.Expense{}).
		Where("category_id = ?", id).
		Count(&refs).Error; err != nil {
		util.Fail(c, err)
		return
	}
	if refs == 0 {
		if err := h.DB.Model(&models.SpendingLimit{}).
			Where("category_id = ?", id).
			Count(&refs).Error; err != nil {
			util.Fail(c, err)
			return
		}
	}
	if refs > 0 {
		util.Fail(c, util.Conflict("Category is still referenced by expenses or spending limits"))
		return
	}

	res := h.DB.Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		util.Fail(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Fail(c, util.NotFound("Category not found"))
		return
	}

	util.Success(c, util.Response{
		"message": "Category deleted",
	})
}
