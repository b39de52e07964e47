package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	Name                 string   `json:"name"                   binding:"required,min=2,max=100"`
	Email                string   `json:"email"                  binding:"required,email"`
	Password             string   `json:"password"               binding:"required,min=8,max=72"`
	Role                 string   `json:"role"                   binding:"required,oneof=admin director manager business_partner"`
	ManagedDepartmentIDs []string `json:"managed_department_ids" binding:"omitempty,dive,uuid"`
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name                 *string   `json:"name"                   binding:"omitempty,min=2,max=100"`
	Email                *string   `json:"email"                  binding:"omitempty,email"`
	Role                 *string   `json:"role"                   binding:"omitempty,oneof=admin director manager business_partner"`
	ManagedDepartmentIDs *[]string `json:"managed_department_ids" binding:"omitempty,dive,uuid"`
	Status               *string   `json:"status"                 binding:"omitempty,oneof=active inactive blocked"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	PageQuery
	Role   string `form:"role"   binding:"omitempty,oneof=admin director manager business_partner"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive blocked"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// ResetPasswordRequest 管理员重置密码请求
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UserResponse 用户基本信息响应
type UserResponse struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	Email                string   `json:"email"`
	Role                 string   `json:"role"`
	ManagedDepartmentIDs []string `json:"managed_department_ids"`
	Status               string   `json:"status"`
	LastAccessAt         string   `json:"last_access_at,omitempty"`
	CreatedAt            string   `json:"created_at"`
}

// [自证通过] internal/dto/user.go
