package dto

// ── 带教模块 DTO ──

// AssignMentorRequest 为新人分配导师请求
type AssignMentorRequest struct {
	MentorID string `json:"mentor_id" binding:"required,uuid"`
}

// NewbieResponse 新人信息
type NewbieResponse struct {
	UserID           string  `json:"user_id"`
	MentorID         string  `json:"mentor_id,omitempty"`
	IsAssigned       bool    `json:"is_assigned"`
	IsGraduate       bool    `json:"is_graduate"`
	GraduationTime   string  `json:"graduation_time,omitempty"`
	ExamAverageScore float64 `json:"exam_average_score"`
}

// TutorResponse 导师信息（含带教统计）
type TutorResponse struct {
	UserID              string  `json:"user_id"`
	IsApproved          bool    `json:"is_approved"`
	IsGraduate          bool    `json:"is_graduate"`
	GraduationTime      string  `json:"graduation_time,omitempty"`
	TotalScore          float64 `json:"total_score"`
	AverageScore        float64 `json:"average_score"`
	GraduateNewbieCount int     `json:"graduate_newbie_count"`
	TotalNewbieCount    int     `json:"total_newbie_count"`
}

// ── 评价 ──

// CreateReviewRequest 提交评价请求
type CreateReviewRequest struct {
	Kind      string  `json:"kind"       binding:"required,oneof=newbie_to_mentor mentor_to_newbie"`
	TraineeID string  `json:"trainee_id" binding:"required,uuid"`
	Score     float64 `json:"score"      binding:"gte=0,lte=100"`
	Comment   string  `json:"comment"    binding:"omitempty,max=500"`
}

// ReviewResponse 评价响应
type ReviewResponse struct {
	ReviewID  string  `json:"review_id"`
	Kind      string  `json:"kind"`
	TraineeID string  `json:"trainee_id"`
	TargetID  string  `json:"target_id"`
	Score     float64 `json:"score"`
	Comment   string  `json:"comment,omitempty"`
	Graduated bool    `json:"graduated"` // 该评价是否触发新人结业
}

// ── 学员角色 ──

// SetTraineeRolesRequest 设置用户的新人 / 导师角色
type SetTraineeRolesRequest struct {
	Newbie bool `json:"newbie"`
	Tutor  bool `json:"tutor"`
}

// TraineeRolesResponse 学员角色状态
type TraineeRolesResponse struct {
	UserID string `json:"user_id"`
	Newbie bool   `json:"newbie"`
	Tutor  bool   `json:"tutor"`
}

// ── 组织新人进度 ──

// DivisionProgressRequest 组织新人进度分页查询
type DivisionProgressRequest struct {
	PaginationRequest
}

// NewbieProgressResponse 单个新人的培训进度摘要，完成情况以 "已完成/总数" 表示
type NewbieProgressResponse struct {
	UserID           string  `json:"user_id"`
	Name             string  `json:"name"`
	Email            string  `json:"email"`
	MentorID         string  `json:"mentor_id,omitempty"`
	MentorName       string  `json:"mentor_name,omitempty"`
	IsAssigned       bool    `json:"is_assigned"`
	IsGraduate       bool    `json:"is_graduate"`
	GraduationTime   string  `json:"graduation_time,omitempty"`
	ExamAverageScore float64 `json:"exam_average_score"`
	Exams            string  `json:"exams"`
	Tasks            string  `json:"tasks"`
	Courses          string  `json:"courses"`
}
