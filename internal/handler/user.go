package handler

import (
	"net/http"
	"strings"

	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetMe returns the current user's profile.
func GetMe(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"user": user,
	})
}

type updateMeReq struct {
	Name string `json:"name" binding:"required,max=64"`
}

// UpdateMe updates the current user's display name.
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req updateMeReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
			return
		}

		user.Name = strings.TrimSpace(req.Name)
		if err := db.Save(user).Error; err != nil {
			util.Fail(c, err)
			return
		}

		util.Success(c, util.Response{
			"user": user,
		})
	}
}
