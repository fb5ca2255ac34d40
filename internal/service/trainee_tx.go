package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
)

// ── 学员相关业务错误（培训 / 带教 / 评价共用） ──

var (
	ErrTraineeNotFound     = errors.New("学员不存在")
	ErrTraineeKindInvalid  = errors.New("学员类型无效")
	ErrTrainingNotAssigned = errors.New("尚未下发培训内容")
	ErrTutorNotApproved    = errors.New("导师尚未通过审批")
	ErrTraineeGraduated    = errors.New("学员已结业")
)

// 行锁顺序：先新人行，再导师行（多个导师按 ID 升序），各写路径保持一致以避免死锁。

// lockNewbie 事务内锁定新人行；不存在或角色已移除视为不存在
func lockNewbie(ctx context.Context, tx *repository.Repository, userID string) (*model.Newbie, error) {
	n, err := tx.Newbie.GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	if !n.IsExist {
		return nil, ErrTraineeNotFound
	}
	return n, nil
}

// lockTutor 事务内锁定导师行；不存在或角色已移除视为不存在
func lockTutor(ctx context.Context, tx *repository.Repository, userID string) (*model.Tutor, error) {
	t, err := tx.Tutor.GetByIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	if !t.IsExist {
		return nil, ErrTraineeNotFound
	}
	return t, nil
}

// lockMentorOf 锁定新人当前导师行；无导师或导师行缺失时返回 nil
func lockMentorOf(ctx context.Context, tx *repository.Repository, n *model.Newbie) (*model.Tutor, error) {
	if n.MentorID == nil {
		return nil, nil
	}
	m, err := tx.Tutor.GetByIDForUpdate(ctx, *n.MentorID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return m, err
}

// lockTrainee 按类型锁定学员行，新人同时锁定其导师行
func lockTrainee(ctx context.Context, tx *repository.Repository, userID string, kind model.TraineeKind) (progression.Trainee, *model.Tutor, error) {
	switch kind {
	case model.KindNewbie:
		n, err := lockNewbie(ctx, tx, userID)
		if err != nil {
			return nil, nil, err
		}
		mentor, err := lockMentorOf(ctx, tx, n)
		if err != nil {
			return nil, nil, err
		}
		return n, mentor, nil
	case model.KindTutor:
		t, err := lockTutor(ctx, tx, userID)
		if err != nil {
			return nil, nil, err
		}
		return t, nil, nil
	}
	return nil, nil, ErrTraineeKindInvalid
}

// requireSnapshot 培训事件前置条件：导师须已审批，学员须已下发快照
func requireSnapshot(t progression.Trainee) error {
	if tutor, ok := t.(*model.Tutor); ok && !tutor.IsApproved {
		return ErrTutorNotApproved
	}
	if t.Snapshot() == nil {
		return ErrTrainingNotAssigned
	}
	return nil
}

// saveTrainee 保存学员行（带版本校验）
func saveTrainee(ctx context.Context, tx *repository.Repository, t progression.Trainee, callerID string) error {
	switch v := t.(type) {
	case *model.Newbie:
		v.UpdatedBy = &callerID
		return tx.Newbie.Update(ctx, v)
	case *model.Tutor:
		v.UpdatedBy = &callerID
		return tx.Tutor.Update(ctx, v)
	}
	return ErrTraineeKindInvalid
}

// saveOutcome 按引擎结果保存发生变化的行
func saveOutcome(ctx context.Context, tx *repository.Repository, out progression.Outcome, t progression.Trainee, mentor, former *model.Tutor, callerID string) error {
	if out.Changed {
		if err := saveTrainee(ctx, tx, t, callerID); err != nil {
			return err
		}
	}
	if out.MentorTouched && mentor != nil {
		if err := saveTrainee(ctx, tx, mentor, callerID); err != nil {
			return err
		}
	}
	if out.FormerTouched && former != nil {
		if err := saveTrainee(ctx, tx, former, callerID); err != nil {
			return err
		}
	}
	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
