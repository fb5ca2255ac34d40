package model

import (
	"time"

	"gorm.io/datatypes"
)

// Newbie 新人表 — 对应 newbies（主键即用户 ID）
type Newbie struct {
	UserID           string                                `gorm:"type:uuid;primaryKey"          json:"user_id"`
	MentorID         *string                               `gorm:"type:uuid"                     json:"mentor_id,omitempty"`
	IsAssigned       bool                                  `gorm:"not null;default:false"        json:"is_assigned"`
	IsGraduate       bool                                  `gorm:"not null;default:false"        json:"is_graduate"`
	GraduationTime   *time.Time                            `                                     json:"graduation_time,omitempty"`
	Training         datatypes.JSONType[*TrainingSnapshot] `gorm:"type:jsonb;not null;default:'null'" json:"training"`
	ExamAverageScore float64                               `gorm:"not null;default:0"            json:"exam_average_score"`
	TraineeModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Newbie) TableName() string { return "newbies" }

func (n *Newbie) TraineeID() string                  { return n.UserID }
func (n *Newbie) Kind() TraineeKind                  { return KindNewbie }
func (n *Newbie) Snapshot() *TrainingSnapshot        { return n.Training.Data() }
func (n *Newbie) SetSnapshot(snap *TrainingSnapshot) { n.Training = datatypes.NewJSONType(snap) }
func (n *Newbie) Graduated() bool                    { return n.IsGraduate }

// MarkGraduated 置结业状态，时间精确到秒
func (n *Newbie) MarkGraduated(at time.Time) {
	t := at.Truncate(time.Second)
	n.IsGraduate = true
	n.GraduationTime = &t
}

// Tutor 导师表 — 对应 tutors
// 统计字段由其名下新人的分配/结业事件更新
type Tutor struct {
	UserID              string                                `gorm:"type:uuid;primaryKey"          json:"user_id"`
	IsApproved          bool                                  `gorm:"not null;default:false"        json:"is_approved"`
	IsGraduate          bool                                  `gorm:"not null;default:false"        json:"is_graduate"`
	GraduationTime      *time.Time                            `                                     json:"graduation_time,omitempty"`
	Training            datatypes.JSONType[*TrainingSnapshot] `gorm:"type:jsonb;not null;default:'null'" json:"training"`
	TotalScore          float64                               `gorm:"not null;default:0"            json:"total_score"`
	AverageScore        float64                               `gorm:"not null;default:0"            json:"average_score"`
	GraduateNewbieCount int                                   `gorm:"not null;default:0"            json:"graduate_newbie_count"`
	TotalNewbieCount    int                                   `gorm:"not null;default:0"            json:"total_newbie_count"`
	TraineeModel

	// 关联
	User *User `gorm:"foreignKey:UserID;references:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Tutor) TableName() string { return "tutors" }

func (t *Tutor) TraineeID() string                  { return t.UserID }
func (t *Tutor) Kind() TraineeKind                  { return KindTutor }
func (t *Tutor) Snapshot() *TrainingSnapshot        { return t.Training.Data() }
func (t *Tutor) SetSnapshot(snap *TrainingSnapshot) { t.Training = datatypes.NewJSONType(snap) }
func (t *Tutor) Graduated() bool                    { return t.IsGraduate }

// MarkGraduated 置结业状态，时间精确到秒
func (t *Tutor) MarkGraduated(at time.Time) {
	ts := at.Truncate(time.Second)
	t.IsGraduate = true
	t.GraduationTime = &ts
}

// CanMentor 导师带新人资格：角色有效且本人已结业
func (t *Tutor) CanMentor() bool {
	return t.IsExist && t.IsGraduate
}

// [自证通过] internal/model/trainee.go
