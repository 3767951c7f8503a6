package dto

// PaginationQuery là query param phân trang chung
type PaginationQuery struct {
	Page  int `form:"page,default=0"`
	Limit int `form:"limit,default=10"`
}
