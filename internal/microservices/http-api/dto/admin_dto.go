package dto

// ModerateReviewRequest: payload for PUT /api/admin/reviews/:reviewId
type ModerateReviewRequest struct {
	IsRemoved *bool `json:"isRemoved"`
	Featured  *bool `json:"featured"`
}

// UpdateUserRequest: payload for PUT /api/admin/users/:userId
type UpdateUserRequest struct {
	Role     *string `json:"role" binding:"omitempty,oneof=user admin superadmin"`
	IsActive *bool   `json:"isActive"`
}

// Pagination is the paging block on admin list responses
type Pagination struct {
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
	Pages    int64 `json:"total_pages"`
}

func NewPagination(page, pageSize int, total int64) Pagination {
	pages := int64(0)
	if pageSize > 0 {
		pages = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{Page: page, PageSize: pageSize, Total: total, Pages: pages}
}
