package handler

import (
	"net/http"

	"foodreview/internal/microservices/http-api/dto"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	admin      service.AdminService
	complaints service.ComplaintService
}

func NewAdminHandler(admin service.AdminService, complaints service.ComplaintService) *AdminHandler {
	return &AdminHandler{admin: admin, complaints: complaints}
}

// RegisterRoutes expects rg to already require an admin token.
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Dashboard)
	rg.GET("/reviews", h.ListReviews)
	rg.PUT("/reviews/:reviewId", h.ModerateReview)
	rg.GET("/reports", h.ListReports)
	rg.GET("/complaints", h.ListComplaints)
	rg.PUT("/complaints/:complaintId", h.UpdateComplaint)

	users := rg.Group("/users", middleware.RequireRole(models.RoleSuperAdmin))
	users.GET("", h.ListUsers)
	users.PUT("/:userId", h.UpdateUser)
	users.DELETE("/:userId", h.DeleteUser)
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	stats, err := h.admin.Dashboard(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func adminPaging(c *gin.Context) (int, int) {
	page, pageSize := parsePaging(c)
	if page == 0 {
		page = 1
	}
	if pageSize == 0 {
		pageSize = 20
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	return page, pageSize
}

func (h *AdminHandler) ListReviews(c *gin.Context) {
	status := repository.ReviewStatus(c.DefaultQuery("status", string(repository.StatusAll)))
	switch status {
	case repository.StatusActive, repository.StatusRemoved, repository.StatusAll:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	page, pageSize := adminPaging(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	reviews, total, err := h.admin.ListReviews(ctx, repository.ReviewFilter{
		Query:    c.Query("search"),
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reviews":    dto.FromReviews(reviews),
		"pagination": dto.NewPagination(page, pageSize, total),
	})
}

func (h *AdminHandler) ModerateReview(c *gin.Context) {
	id, ok := objectIDParam(c, "reviewId", "review")
	if !ok {
		return
	}
	var req dto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.admin.ModerateReview(ctx, id, service.ModerationUpdate{
		IsRemoved: req.IsRemoved,
		Featured:  req.Featured,
	}, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Review updated successfully",
		"review":  dto.FromReview(review),
	})
}

func (h *AdminHandler) ListReports(c *gin.Context) {
	page, pageSize := adminPaging(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	reports, total, err := h.admin.ListReports(ctx, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"reports":    reports,
		"pagination": dto.NewPagination(page, pageSize, total),
	})
}

func (h *AdminHandler) ListComplaints(c *gin.Context) {
	page, pageSize := adminPaging(c)
	ctx, cancel := requestContext(c)
	defer cancel()

	complaints, total, err := h.complaints.List(ctx, repository.ComplaintFilter{
		Status:   c.Query("status"),
		Query:    c.Query("search"),
		Page:     page,
		PageSize: pageSize,
	}, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"complaints": complaints,
		"pagination": dto.NewPagination(page, pageSize, total),
	})
}

func (h *AdminHandler) UpdateComplaint(c *gin.Context) {
	id, ok := uuidParam(c, "complaintId", "complaint")
	if !ok {
		return
	}
	var req dto.AdminUpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := h.complaints.UpdateStatus(ctx, id, req.Status, req.Response, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "Complaint updated successfully",
		"complaint": complaint,
	})
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", "active", "inactive":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}
	role := c.Query("role")
	if role != "" && role != "all" && !models.IsValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	page, pageSize := adminPaging(c)

	ctx, cancel := requestContext(c)
	defer cancel()

	users, total, err := h.admin.ListUsers(ctx, repository.UserFilter{
		Query:    c.Query("search"),
		Role:     role,
		Status:   status,
		Page:     page,
		PageSize: pageSize,
	}, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, dto.FromUser(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"users":      out,
		"pagination": dto.NewPagination(page, pageSize, total),
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.admin.UpdateUser(ctx, id, service.UserUpdate{
		Role:     req.Role,
		IsActive: req.IsActive,
	}, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    dto.FromUser(user),
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := uuidParam(c, "userId", "user")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.admin.DeleteUser(ctx, id, middleware.RequesterFrom(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
