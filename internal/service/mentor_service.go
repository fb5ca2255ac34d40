package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
)

// ── 带教模块业务错误 ──

var (
	ErrMentorNotEligible = errors.New("导师不具备带教资格")
	ErrTemplateNotFound  = errors.New("培训模板不存在")
	ErrUserNotFound      = errors.New("用户不存在")
)

// MentorService 导师分配与审批业务接口
type MentorService interface {
	// AssignMentor 为新人分配（或更换）导师并下发新人培训快照
	AssignMentor(ctx context.Context, newbieID string, req *dto.AssignMentorRequest, callerID string) (*dto.NewbieResponse, error)
	// ApproveTutor 审批导师并下发导师培训快照
	ApproveTutor(ctx context.Context, tutorID string, callerID string) (*dto.TutorResponse, error)
}

type mentorService struct {
	repo   *repository.Repository
	opts   []progression.Option
	logger *zap.Logger
}

// NewMentorService 创建 MentorService 实例
func NewMentorService(repo *repository.Repository, logger *zap.Logger, opts ...progression.Option) MentorService {
	return &mentorService{repo: repo, opts: opts, logger: logger}
}

// ────────────────────── AssignMentor ──────────────────────
//
// 资格校验在调用方完成（引擎不做）：导师须在册且本人已结业，不能指派自己。
// 锁顺序：新人行 → 导师行（新、旧导师按 ID 升序）。

func (s *mentorService) AssignMentor(ctx context.Context, newbieID string, req *dto.AssignMentorRequest, callerID string) (*dto.NewbieResponse, error) {
	var newbie *model.Newbie
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		newbie, err = lockNewbie(ctx, tx, newbieID)
		if err != nil {
			return err
		}
		if newbie.IsGraduate {
			return ErrTraineeGraduated
		}
		if req.MentorID == newbie.UserID {
			return ErrMentorNotEligible
		}

		mentor, former, err := s.lockMentors(ctx, tx, req.MentorID, newbie.MentorID)
		if err != nil {
			return err
		}
		if !mentor.CanMentor() {
			return ErrMentorNotEligible
		}

		cur, err := s.curriculumFor(ctx, tx, newbie.UserID, model.KindNewbie)
		if err != nil {
			return err
		}

		eng := progression.NewEngine(tx.Review, s.opts...)
		out, err := eng.AssignNewbie(ctx, newbie, mentor, former, cur)
		if err != nil {
			return err
		}
		return saveOutcome(ctx, tx, out, newbie, mentor, former, callerID)
	})
	if err != nil {
		if !isBusinessErr(err) {
			s.logger.Error("分配导师失败",
				zap.String("newbie_id", newbieID), zap.String("mentor_id", req.MentorID), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("分配导师",
		zap.String("newbie_id", newbieID), zap.String("mentor_id", req.MentorID), zap.String("operator", callerID))
	return toNewbieResponse(newbie), nil
}

// lockMentors 按 ID 升序锁定新导师与原导师（原导师可能为空或已不存在）
func (s *mentorService) lockMentors(ctx context.Context, tx *repository.Repository, mentorID string, formerID *string) (mentor, former *model.Tutor, err error) {
	ids := []string{mentorID}
	if formerID != nil && *formerID != mentorID {
		ids = append(ids, *formerID)
	}
	sort.Strings(ids)

	for _, id := range ids {
		t, err := tx.Tutor.GetByIDForUpdate(ctx, id)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		if id == mentorID {
			mentor = t
		} else {
			former = t
		}
	}
	if mentor == nil {
		return nil, nil, ErrMentorNotEligible
	}
	return mentor, former, nil
}

// curriculumFor 按学员所属组织查找对应类型的模板并组装课程表
func (s *mentorService) curriculumFor(ctx context.Context, tx *repository.Repository, userID string, kind model.TraineeKind) (progression.Curriculum, error) {
	user, err := tx.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.Curriculum{}, ErrUserNotFound
		}
		return progression.Curriculum{}, err
	}
	tpl, err := tx.Template.Get(ctx, kind, user.DivisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return progression.Curriculum{}, ErrTemplateNotFound
		}
		return progression.Curriculum{}, err
	}
	return buildCurriculum(ctx, tx, tpl.Content.Data())
}

// ────────────────────── ApproveTutor ──────────────────────

func (s *mentorService) ApproveTutor(ctx context.Context, tutorID string, callerID string) (*dto.TutorResponse, error) {
	var tutor *model.Tutor
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		var err error
		tutor, err = lockTutor(ctx, tx, tutorID)
		if err != nil {
			return err
		}
		if tutor.IsApproved {
			return nil
		}

		cur, err := s.curriculumFor(ctx, tx, tutor.UserID, model.KindTutor)
		if err != nil {
			return err
		}

		eng := progression.NewEngine(tx.Review, s.opts...)
		out, err := eng.ApproveTutor(ctx, tutor, cur)
		if err != nil {
			return err
		}
		return saveOutcome(ctx, tx, out, tutor, nil, nil, callerID)
	})
	if err != nil {
		if !isBusinessErr(err) {
			s.logger.Error("审批导师失败", zap.String("tutor_id", tutorID), zap.Error(err))
		}
		return nil, err
	}
	return toTutorResponse(tutor), nil
}

func toNewbieResponse(n *model.Newbie) *dto.NewbieResponse {
	resp := &dto.NewbieResponse{
		UserID:           n.UserID,
		IsAssigned:       n.IsAssigned,
		IsGraduate:       n.IsGraduate,
		GraduationTime:   formatTime(n.GraduationTime),
		ExamAverageScore: n.ExamAverageScore,
	}
	if n.MentorID != nil {
		resp.MentorID = *n.MentorID
	}
	return resp
}

func toTutorResponse(t *model.Tutor) *dto.TutorResponse {
	return &dto.TutorResponse{
		UserID:              t.UserID,
		IsApproved:          t.IsApproved,
		IsGraduate:          t.IsGraduate,
		GraduationTime:      formatTime(t.GraduationTime),
		TotalScore:          t.TotalScore,
		AverageScore:        t.AverageScore,
		GraduateNewbieCount: t.GraduateNewbieCount,
		TotalNewbieCount:    t.TotalNewbieCount,
	}
}

// [自证通过] internal/service/mentor_service.go
