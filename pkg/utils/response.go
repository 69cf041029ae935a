package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every endpoint answers with
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PageData carries one page of a listing
type PageData struct {
	Content       interface{} `json:"content"`
	Page          int         `json:"page"`
	Size          int         `json:"size"`
	TotalElements int64       `json:"totalElements"`
	TotalPages    int         `json:"totalPages"`
}

// PaginatedResponse documents a paginated envelope for swagger
type PaginatedResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Data    PageData `json:"data"`
}

// SuccessResponse sends a 200 response with data
func SuccessResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// CreatedResponse sends a 201 response with data
func CreatedResponse(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// PaginatedSuccessResponse sends a 200 response wrapping one page of results
func PaginatedSuccessResponse(c *gin.Context, message string, content interface{}, page, size int, total int64) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: message,
		Data: PageData{
			Content:       content,
			Page:          page,
			Size:          size,
			TotalElements: total,
			TotalPages:    TotalPages(total, size),
		},
	})
}

// ErrorResponse sends an error response with the given status
func ErrorResponse(c *gin.Context, status int, message string, err error) {
	resp := APIResponse{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// FailureResponse sends an unsuccessful response that still carries data
func FailureResponse(c *gin.Context, status int, message string, data interface{}) {
	c.AbortWithStatusJSON(status, APIResponse{
		Success: false,
		Message: message,
		Data:    data,
	})
}

// BadRequestResponse sends a 400 response
func BadRequestResponse(c *gin.Context, message string, err error) {
	ErrorResponse(c, http.StatusBadRequest, message, err)
}

// UnauthorizedResponse sends a 401 response
func UnauthorizedResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, message, nil)
}

// ForbiddenResponse sends a 403 response
func ForbiddenResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, message, nil)
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, message, nil)
}

// ConflictResponse sends a 409 response
func ConflictResponse(c *gin.Context, message string, err error) {
	ErrorResponse(c, http.StatusConflict, message, err)
}

// InternalServerErrorResponse sends a 500 response
func InternalServerErrorResponse(c *gin.Context, message string, err error) {
	ErrorResponse(c, http.StatusInternalServerError, message, err)
}
