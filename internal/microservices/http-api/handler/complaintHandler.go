package handler

import (
	"net/http"
	"strconv"

	"foodreview/internal/microservices/http-api/dto"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	svc service.ComplaintService
}

func NewComplaintHandler(svc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{svc: svc}
}

func (h *ComplaintHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.POST("", limit, h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PATCH("/:id/status", middleware.RequireAdmin(), h.UpdateStatus)
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	var req dto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := h.svc.Create(ctx, req.ToDraft(), middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) List(c *gin.Context) {
	page, pageSize := parsePaging(c)
	filter := repository.ComplaintFilter{
		Status:   c.Query("status"),
		Query:    c.Query("q"),
		Page:     page,
		PageSize: pageSize,
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	list, total, err := h.svc.List(ctx, filter, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, list)
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id", "complaint")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := h.svc.Get(ctx, id, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) UpdateStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id", "complaint")
	if !ok {
		return
	}
	var req dto.UpdateComplaintStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	complaint, err := h.svc.UpdateStatus(ctx, id, req.Status, nil, middleware.RequesterFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}
