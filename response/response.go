package response

import (
	"net/http"

	"stayhub/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse định nghĩa cấu trúc response lỗi
type ErrorResponse struct {
	Detail     string `json:"detail"`
	Code       int    `json:"code"`
	StatusCode int    `json:"status_code"`
}

// SuccessResponse định nghĩa cấu trúc response thành công có message
type SuccessResponse struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// Pagination định nghĩa cấu trúc phân trang
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PaginatedResponse là response data kèm phân trang
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination"`
}

// Success trả về response thành công với data
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Message trả về response thành công chỉ có message
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, SuccessResponse{
		Message: message,
		Success: true,
	})
}

// SuccessWithPagination trả về response thành công có phân trang
func SuccessWithPagination(c *gin.Context, data interface{}, page, limit, total int) {
	c.JSON(http.StatusOK, PaginatedResponse{
		Data: data,
		Pagination: &Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
		},
	})
}

// Error trả về response lỗi với mã lỗi số
func Error(c *gin.Context, statusCode int, code errors.ErrorCode, detail string) {
	c.JSON(statusCode, ErrorResponse{
		Detail:     detail,
		Code:       int(code),
		StatusCode: statusCode,
	})
}

// AppError trả về response từ một error bất kỳ; lỗi không nhận dạng
// được trả về như lỗi unknown 400 kèm message gốc để chẩn đoán
func AppError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		Error(c, appErr.StatusCode, appErr.Code, appErr.Message)
		return
	}
	Error(c, http.StatusBadRequest, errors.ErrCodeUnknown, err.Error())
}

// BadRequest trả về response lỗi validation
func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, errors.ErrCodeValidation, detail)
}

// NotFound trả về response không tìm thấy
func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, errors.ErrCodeNotFound, detail)
}

// Unauthorized trả về response chưa xác thực
func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, errors.ErrCodeInvalidToken, "Not authenticated")
}

// Forbidden trả về response không có quyền
func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, errors.ErrCodeAccessDenied, "Access denied")
}

// ServerError trả về response lỗi server
func ServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, errors.ErrCodeUnknown, "Internal server error")
}
