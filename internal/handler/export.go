package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"finance-tracker/internal/models"
	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams the caller's expenses as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeaders = []string{"Date", "Category", "Amount", "Purpose"}

func (h *ExportHandler) fetch(c *gin.Context, ownerID string) ([]models.Expense, bool) {
	var expenses []models.Expense
	if err := h.DB.WithContext(c.Request.Context()).
		Where("owner_id = ?", ownerID).
		Preload("Category").
		Order("date DESC").
		Find(&expenses).Error; err != nil {
		util.Fail(c, err)
		return nil, false
	}
	return expenses, true
}

func exportRow(e *models.Expense) []string {
	categoryName := ""
	if e.Category != nil {
		categoryName = e.Category.Name
	}
	return []string{
		e.Date.Format("2006-01-02"),
		categoryName,
		strconv.FormatFloat(e.Amount, 'f', 2, 64),
		e.Purpose,
	}
}

// ExportCSV writes the caller's expenses as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	expenses, ok := h.fetch(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for i := range expenses {
		writer.Write(exportRow(&expenses[i]))
	}
}

// ExportXLSX writes the caller's expenses as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}
	expenses, ok := h.fetch(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "Expenses"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "create worksheet failed")
		return
	}
	f.SetActiveSheet(index)

	for i, header := range exportHeaders {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for idx := range expenses {
		row := idx + 2
		for col, value := range exportRow(&expenses[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 15)
	f.SetColWidth(sheetName, "C", "C", 12)
	f.SetColWidth(sheetName, "D", "D", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"expenses_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
