package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"foodreview/internal/microservices/http-api/dto"
	"foodreview/internal/microservices/http-api/middleware"
	"foodreview/internal/microservices/http-api/models"
	"foodreview/internal/microservices/http-api/repository"
	"foodreview/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

var validSorts = map[string]bool{
	"":            true,
	"recent":      true,
	"rating_desc": true,
	"rating_asc":  true,
	"price_low":   true,
	"price_high":  true,
}

type FoodReviewHandler struct {
	reviews   service.ReviewService
	reactions service.ReactionService
	reports   service.ReportService
	comments  service.CommentService
}

func NewFoodReviewHandler(
	reviews service.ReviewService,
	reactions service.ReactionService,
	reports service.ReportService,
	comments service.CommentService,
) *FoodReviewHandler {
	return &FoodReviewHandler{
		reviews:   reviews,
		reactions: reactions,
		reports:   reports,
		comments:  comments,
	}
}

// RegisterRoutes mounts the review API. limit guards the mutating routes.
func (h *FoodReviewHandler) RegisterRoutes(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.GET("/:id/comments", h.ListComments)

	rg.POST("", limit, h.Create)
	rg.PATCH("/:id", limit, h.Update)
	rg.DELETE("/:id", middleware.RequireAdmin(), h.Delete)

	rg.POST("/:id/like", limit, h.Like)
	rg.POST("/:id/dislike", limit, h.Dislike)
	rg.POST("/:id/report", limit, h.Report)
	rg.POST("/:id/comments", limit, h.AddComment)
	rg.DELETE("/:id/comments/:commentId", limit, h.DeleteComment)
}

// queryList accepts repeated params and comma-separated values.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parsePaging(c *gin.Context) (page, pageSize int) {
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	if ps, err := strconv.Atoi(c.Query("page_size")); err == nil && ps > 0 {
		pageSize = ps
	}
	return page, pageSize
}

func (h *FoodReviewHandler) List(c *gin.Context) {
	sort := c.Query("sort")
	if !validSorts[sort] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid sort"})
		return
	}

	page, pageSize := parsePaging(c)
	filter := repository.ReviewFilter{
		Query:       c.Query("q"),
		Cuisine:     queryList(c, "cuisine"),
		Area:        queryList(c, "area"),
		DiningStyle: queryList(c, "diningStyle"),
		Sort:        sort,
		Page:        page,
		PageSize:    pageSize,
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, total, err := h.reviews.List(ctx, filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, dto.FromReviews(list))
}

func (h *FoodReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviews.Create(ctx, req.ToDraft(), c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

func (h *FoodReviewHandler) Get(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviews.Get(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

func (h *FoodReviewHandler) Update(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	review, err := h.reviews.Update(ctx, id, c.GetString(middleware.ContextKeyUserID), req.ToPatch())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

func (h *FoodReviewHandler) Delete(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.reviews.Delete(ctx, id, c.GetString(middleware.ContextKeyRole)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

func (h *FoodReviewHandler) Like(c *gin.Context) {
	h.toggle(c, h.reactions.ToggleLike)
}

func (h *FoodReviewHandler) Dislike(c *gin.Context) {
	h.toggle(c, h.reactions.ToggleDislike)
}

func (h *FoodReviewHandler) toggle(c *gin.Context, fn func(ctx context.Context, reviewID, userID string) (models.ReactionResult, error)) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := fn(ctx, id, c.GetString(middleware.ContextKeyUserID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReaction(res))
}

func (h *FoodReviewHandler) Report(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	var req dto.ReportRequest
	// a missing body is reported as a missing reason by the service
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	res, err := h.reports.Report(ctx, id, c.GetString(middleware.ContextKeyUserID), req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ReportResponse{ReportsCount: res.ReportsCount, Removed: res.Removed})
}

func (h *FoodReviewHandler) ListComments(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.comments.ListComments(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *FoodReviewHandler) AddComment(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.comments.AddComment(ctx, id, c.GetString(middleware.ContextKeyUserID), req.Text, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *FoodReviewHandler) DeleteComment(c *gin.Context) {
	id, ok := objectIDParam(c, "id", "review")
	if !ok {
		return
	}
	commentID, ok := objectIDParam(c, "commentId", "comment")
	if !ok {
		return
	}
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.comments.DeleteComment(ctx, id, commentID, c.GetString(middleware.ContextKeyUserID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
