package dto

import "onboarding/backend/internal/model"

// ── 培训模板 / 组织模块 DTO ──

// UpdateTemplateRequest 覆盖培训模板内容
type UpdateTemplateRequest struct {
	Content model.TemplateContent `json:"content"`
}

// TemplateResponse 培训模板
type TemplateResponse struct {
	TemplateID string                `json:"template_id"`
	Kind       string                `json:"kind"`
	DivisionID string                `json:"division_id"`
	Content    model.TemplateContent `json:"content"`
	UpdatedAt  string                `json:"updated_at"`
}

// CreateDivisionRequest 创建组织请求
type CreateDivisionRequest struct {
	Name     string  `json:"name"      binding:"required,min=2,max=50"`
	ParentID *string `json:"parent_id" binding:"omitempty,uuid"`
}

// DivisionResponse 组织响应
type DivisionResponse struct {
	DivisionID string  `json:"division_id"`
	Name       string  `json:"name"`
	ParentID   *string `json:"parent_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// ── 试题导入 ──

// ImportExamResponse 试题导入结果
type ImportExamResponse struct {
	ExamID       string `json:"exam_id"`
	Title        string `json:"title"`
	ProblemCount int    `json:"problem_count"`
}
