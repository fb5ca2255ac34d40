package dto

// ── 培训进度模块 DTO ──

// TrainingResponse 学员培训进度（快照渲染结果）
type TrainingResponse struct {
	UserID           string               `json:"user_id"`
	Kind             string               `json:"kind"`
	Assigned         bool                 `json:"assigned"` // 新人已分配导师 / 导师已审批
	IsGraduate       bool                 `json:"is_graduate"`
	GraduationTime   string               `json:"graduation_time,omitempty"`
	ExamAverageScore float64              `json:"exam_average_score"`
	Exams            []ExamItemResponse   `json:"exams"`
	Tasks            []TaskItemResponse   `json:"tasks"`
	Courses          []CourseItemResponse `json:"courses"`
}

// ExamItemResponse 快照中的考试条目
type ExamItemResponse struct {
	Index    int      `json:"index"`
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Day      int      `json:"day"`
	Tags     []string `json:"tags"`
	Finished bool     `json:"finished"`
	Score    float64  `json:"score"`
}

// TaskItemResponse 快照中的任务条目
type TaskItemResponse struct {
	Index       int      `json:"index"`
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Day         int      `json:"day"`
	Tags        []string `json:"tags"`
	Finished    bool     `json:"finished"`
}

// CourseItemResponse 快照中的课程条目
type CourseItemResponse struct {
	Index      int                   `json:"index"`
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Day        int                   `json:"day"`
	Tags       []string              `json:"tags"`
	IsOptional bool                  `json:"is_optional"`
	Finished   bool                  `json:"finished"`
	Sections   []SectionItemResponse `json:"sections"`
}

// SectionItemResponse 课程章节条目
type SectionItemResponse struct {
	Index    int    `json:"index"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Finished bool   `json:"finished"`
}

// SubmitExamRequest 提交考试答案；answers[i] 为第 i 题所选选项下标
type SubmitExamRequest struct {
	Answers [][]int `json:"answers" binding:"required"`
}

// SubmitExamResponse 判题结果
type SubmitExamResponse struct {
	Correct      []bool  `json:"correct"`
	CorrectCount int     `json:"correct_count"`
	Score        float64 `json:"score"`
	Passed       bool    `json:"passed"`
	Graduated    bool    `json:"graduated"`
}

// ProgressResponse 完成任务 / 章节后的进度变化
type ProgressResponse struct {
	Finished  bool `json:"finished"`
	Graduated bool `json:"graduated"`
}
