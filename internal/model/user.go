package model

import "time"

// 用户角色（统一命名方案）
const (
	RoleAdmin           = "admin"
	RoleDirector        = "director"
	RoleManager         = "manager"
	RoleBusinessPartner = "business_partner"
)

// 用户状态
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
	UserStatusBlocked  = "blocked"
)

// User 用户表 — 对应 users
// TokenVersion 递增即吊销该用户已签发的全部 Token
type User struct {
	UserID               string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	TenantID             string     `gorm:"type:uuid;not null"                             json:"tenant_id"`
	Name                 string     `gorm:"type:varchar(100);not null"                     json:"name"`
	Email                string     `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash         string     `gorm:"type:varchar(255);not null"                     json:"-"`
	Role                 string     `gorm:"type:varchar(20);not null;default:'manager'"    json:"role"`
	ManagedDepartmentIDs UUIDArray  `gorm:"type:uuid[];not null;default:'{}'"              json:"managed_department_ids"`
	Status               string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	TokenVersion         int        `gorm:"not null;default:0"                             json:"-"`
	LastAccessAt         *time.Time `json:"last_access_at,omitempty"`
	VersionedModel

	// 关联
	Tenant *Tenant `gorm:"foreignKey:TenantID;references:TenantID" json:"tenant,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }

// [自证通过] internal/model/user.go
