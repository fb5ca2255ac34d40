package model

import "gorm.io/datatypes"

// ProblemType 题型
type ProblemType string

const (
	ProblemSingle   ProblemType = "single"
	ProblemMultiple ProblemType = "multiple"
)

// Problem 考试题目；Answers 为正确选项下标（从 0 开始）
type Problem struct {
	Type    ProblemType `json:"type"`
	Content string      `json:"content"`
	Options []string    `json:"options"`
	Answers []int       `json:"answers"`
}

// Exam 考试表 — 对应 exams
type Exam struct {
	ExamID      string                        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exam_id"`
	Title       string                        `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string                        `gorm:"type:text"                                      json:"description,omitempty"`
	Problems    datatypes.JSONType[[]Problem] `gorm:"type:jsonb;not null"                            json:"problems"`
	VersionedModel
}

// TableName 指定表名
func (Exam) TableName() string { return "exams" }

// Task 任务表 — 对应 tasks
type Task struct {
	TaskID      string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"task_id"`
	Title       string `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string `gorm:"type:text"                                      json:"description,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Task) TableName() string { return "tasks" }

// CourseSection 课程章节
type CourseSection struct {
	SectionID string `json:"section_id"`
	Title     string `json:"title"`
	Content   string `json:"content,omitempty"`
}

// Course 课程表 — 对应 courses
type Course struct {
	CourseID    string                              `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Title       string                              `gorm:"type:varchar(100);not null"                     json:"title"`
	Description string                              `gorm:"type:text"                                      json:"description,omitempty"`
	Sections    datatypes.JSONType[[]CourseSection] `gorm:"type:jsonb;not null"                            json:"sections"`
	VersionedModel
}

// TableName 指定表名
func (Course) TableName() string { return "courses" }

// SectionIDs 课程全部章节 ID（按顺序）
func (c *Course) SectionIDs() []string {
	sections := c.Sections.Data()
	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.SectionID)
	}
	return ids
}
