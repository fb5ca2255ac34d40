package model

// User 用户表 — 对应 users
type User struct {
	UserID     string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name       string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email      string `gorm:"type:varchar(255);not null"                     json:"email"`
	Role       string `gorm:"type:varchar(20);not null;default:'member'"     json:"role"` // member | admin | hrbp
	DivisionID string `gorm:"type:uuid;not null"                             json:"division_id"`
	VersionedModel

	// 关联
	Division *Division `gorm:"foreignKey:DivisionID;references:DivisionID" json:"division,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// 系统角色（JWT role 声明）
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
	RoleHRBP   = "hrbp"
)
