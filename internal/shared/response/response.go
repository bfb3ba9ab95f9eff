package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is the failure envelope: {"error":{"code":"...","message":"..."}}
type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type errorBody struct {
	Error *Error `json:"error"`
}

// Pagination is returned alongside every paged listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// NewPagination computes totalPages = ceil(total/pageSize)
func NewPagination(page, pageSize, total int) Pagination {
	totalPages := 0
	if pageSize > 0 {
		totalPages = (total + pageSize - 1) / pageSize
	}
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Success writes a plain JSON payload
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// ErrorResponse writes the failure envelope
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, errorBody{
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

// Error taxonomy helpers

func ValidationError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message)
}

func UserExists(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusBadRequest, "USER_EXISTS", message)
}

func InvalidCredentials(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message)
}

// InternalError withholds detail from the caller; the cause is logged at
// the handler boundary.
func InternalError(c *gin.Context) {
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
