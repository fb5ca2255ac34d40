package repository

import (
	"context"

	"gorm.io/gorm"

	"onboarding/backend/internal/model"
)

// DivisionRepository 组织（部门）数据访问接口
type DivisionRepository interface {
	Create(ctx context.Context, division *model.Division) error
	GetByID(ctx context.Context, id string) (*model.Division, error)
	Delete(ctx context.Context, id string, deletedBy string) error
}

// divisionRepo DivisionRepository 的 GORM 实现
type divisionRepo struct {
	db *gorm.DB
}

// NewDivisionRepo 创建 DivisionRepository 实例
func NewDivisionRepo(db *gorm.DB) DivisionRepository {
	return &divisionRepo{db: db}
}

func (r *divisionRepo) Create(ctx context.Context, division *model.Division) error {
	return r.db.WithContext(ctx).Create(division).Error
}

func (r *divisionRepo) GetByID(ctx context.Context, id string) (*model.Division, error) {
	var division model.Division
	err := r.db.WithContext(ctx).
		Where("division_id = ?", id).
		First(&division).Error
	if err != nil {
		return nil, err
	}
	return &division, nil
}

// Delete 软删除组织
func (r *divisionRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Division{}).
		Where("division_id = ?", id).
		Updates(map[string]interface{}{
			"deleted_by": deletedBy,
			"deleted_at": gorm.Expr("NOW()"),
		}).Error
}
