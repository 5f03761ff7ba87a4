package response

import (
	"github.com/gin-gonic/gin"

	"bookcourier-backend/internal/shared/apperror"
)

type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type Meta struct {
	Page  int `json:"page,omitempty"`
	Limit int `json:"limit,omitempty"`
	Total int `json:"total,omitempty"`
}

// Success responses
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

func SuccessWithMeta(c *gin.Context, statusCode int, data interface{}, meta *Meta) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// Error responses
func ErrorResponse(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, Response{
		Success: false,
		Error: &Error{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// FromError renders any service error using its apperror kind.
func FromError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	ErrorResponse(c, kind.HTTPStatus(), string(kind), apperror.MessageOf(err))
}

// Common error responses
func BadRequest(c *gin.Context, message string) {
	ErrorResponse(c, 400, string(apperror.KindInvalidArgument), message)
}

func Unauthorized(c *gin.Context, message string) {
	ErrorResponse(c, 401, string(apperror.KindUnauthenticated), message)
}

func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, 403, string(apperror.KindForbidden), message)
}

func NotFound(c *gin.Context, message string) {
	ErrorResponse(c, 404, string(apperror.KindNotFound), message)
}

func Conflict(c *gin.Context, message string) {
	ErrorResponse(c, 409, string(apperror.KindConflict), message)
}

func InternalServerError(c *gin.Context, message string) {
	ErrorResponse(c, 500, string(apperror.KindInternal), message)
}
