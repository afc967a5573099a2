package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the data part of the success envelope.
type Response map[string]interface{}

// business codes
const (
	CodeOK           = 0
	CodeInvalidParam = 40001
	CodeAuth         = 40101
	CodeForbidden    = 40301
	CodeNotFound     = 40401
	CodeConflict     = 40901
	CodeServerErr    = 50001
)

// Success writes the unified success envelope.
func Success(c *gin.Context, data Response) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Created writes the success envelope with a 201 status.
func Created(c *gin.Context, data Response) {
	c.JSON(http.StatusCreated, gin.H{
		"code": CodeOK,
		"data": data,
	})
}

// Error writes the unified error envelope.
func Error(c *gin.Context, httpStatus int, code int, msg string) {
	c.JSON(httpStatus, gin.H{
		"code":    code,
		"message": msg,
	})
}

// Fail maps an error to the envelope: AppError keeps its classification,
// anything else is reported as a server error.
func Fail(c *gin.Context, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		Error(c, appErr.Status, appErr.Code, appErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, CodeServerErr, "internal server error")
}
