package router

import (
	"finance-tracker/internal/config"
	"finance-tracker/internal/handler"
	"finance-tracker/internal/middleware"
	"finance-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup configures the Gin engine and the API route table.
func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	api := r.Group("/api/v1")

	authHandler := handler.NewAuthHandler(db, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	authRequired := middleware.AuthMiddleware(cfg.JWT.Secret, db)
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	audit := middleware.AuditMiddleware(db)

	// category reads are public; mutation is admin-only
	categoryHandler := handler.NewCategoryHandler(db)
	categories := api.Group("/categories")
	categories.GET("", categoryHandler.List)
	categories.GET("/:id", categoryHandler.Get)
	categories.POST("", authRequired, adminOnly, audit, categoryHandler.Create)
	categories.PATCH("/:id", authRequired, adminOnly, audit, categoryHandler.Update)
	categories.DELETE("/:id", authRequired, adminOnly, audit, categoryHandler.Delete)

	protected := api.Group("")
	protected.Use(authRequired, audit)

	protected.GET("/users/me", handler.GetMe)
	protected.PATCH("/users/me", handler.UpdateMe(db))

	expenseHandler := handler.NewExpenseHandler(db)
	protected.POST("/expenses", expenseHandler.Create)
	protected.GET("/expenses", expenseHandler.List)
	protected.GET("/expenses/daily-total", expenseHandler.DailyTotal)
	protected.GET("/expenses/category-total", expenseHandler.CategoryTotal)
	protected.GET("/expenses/:id", expenseHandler.Get)
	protected.PATCH("/expenses/:id", expenseHandler.Update)
	protected.DELETE("/expenses/:id", expenseHandler.Delete)

	limitHandler := handler.NewLimitHandler(db)
	protected.POST("/spending-limits", limitHandler.Create)
	protected.GET("/spending-limits", limitHandler.List)
	protected.GET("/spending-limits/:id", limitHandler.Get)
	protected.PATCH("/spending-limits/:id", limitHandler.Update)
	protected.DELETE("/spending-limits/:id", limitHandler.Delete)

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	return r
}
