// Package progression 培训进度引擎
//
// 引擎是作用于学员培训快照的纯转移函数：调用方（service 层）负责加锁读取行、
// 校验权限与资格、在事务内保存引擎修改过的行。引擎本身不做任何 I/O，
// 仅通过 ReviewFinder 查询结业所需的新人评价。
package progression

import (
	"context"
	"errors"
	"fmt"
	"time"

	"onboarding/backend/internal/model"
)

var (
	// ErrNoSuchItem 条目下标越界（考试/任务/课程/章节）
	ErrNoSuchItem = errors.New("培训条目不存在")
	// ErrInvalidAnswer 提交的答案不合法，判题前拒绝
	ErrInvalidAnswer = errors.New("答案无效")
)

// Trainee 学员抽象，*model.Newbie 与 *model.Tutor 均实现
type Trainee interface {
	TraineeID() string
	Kind() model.TraineeKind
	Snapshot() *model.TrainingSnapshot
	SetSnapshot(snap *model.TrainingSnapshot)
	Graduated() bool
}

// ReviewFinder 评价查询，不存在时返回 (nil, nil)
type ReviewFinder interface {
	FindReview(ctx context.Context, traineeID string, kind model.ReviewKind) (*model.Review, error)
}

// Outcome 一次事件的结果，调用方据此决定需要保存哪些行
type Outcome struct {
	Changed       bool // 学员行发生变化
	Graduated     bool // 本次事件触发结业
	MentorTouched bool // 当前导师统计发生变化
	FormerTouched bool // 原导师统计发生变化
}

func (o Outcome) merge(other Outcome) Outcome {
	return Outcome{
		Changed:       o.Changed || other.Changed,
		Graduated:     o.Graduated || other.Graduated,
		MentorTouched: o.MentorTouched || other.MentorTouched,
		FormerTouched: o.FormerTouched || other.FormerTouched,
	}
}

// Engine 培训进度引擎，无跨调用的共享可变状态
type Engine struct {
	reviews ReviewFinder
	now     func() time.Time
}

// Option 引擎可选项
type Option func(*Engine)

// WithClock 注入时钟（测试用）
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine 创建引擎
func NewEngine(reviews ReviewFinder, opts ...Option) *Engine {
	e := &Engine{reviews: reviews, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ════════════════════════════════════════════════════════════
// 分配 / 审批
// ════════════════════════════════════════════════════════════

// AssignNewbie 为新人分配导师并下发培训快照
//
// 顺序固定：
//  1. 新导师 total_newbie_count +1
//  2. 原导师（存在且不同）-1
//  3. 写入 mentor_id
//  4. 用课程表实例化全新快照（旧进度全部丢弃）
//  5. 执行结业检查（空模板可能直接结业）
//
// 重新分配给同一导师时计数不变，快照仍然重置。
// former 为调用方解析出的原导师行，可为 nil。
func (e *Engine) AssignNewbie(ctx context.Context, newbie *model.Newbie, mentor, former *model.Tutor, cur Curriculum) (Outcome, error) {
	out := Outcome{Changed: true}

	sameMentor := newbie.MentorID != nil && *newbie.MentorID == mentor.UserID
	if !sameMentor {
		mentor.TotalNewbieCount++
		out.MentorTouched = true
		if former != nil && newbie.MentorID != nil && *newbie.MentorID == former.UserID {
			former.TotalNewbieCount--
			out.FormerTouched = true
		}
	}

	mentorID := mentor.UserID
	newbie.MentorID = &mentorID
	newbie.IsAssigned = true
	newbie.SetSnapshot(Instantiate(cur))
	newbie.ExamAverageScore = 0

	grad, err := e.CheckGraduation(ctx, newbie, mentor)
	if err != nil {
		return out, err
	}
	return out.merge(grad), nil
}

// ApproveTutor HRBP 审批导师并下发导师培训快照；已审批时不做任何修改
func (e *Engine) ApproveTutor(ctx context.Context, tutor *model.Tutor, cur Curriculum) (Outcome, error) {
	if tutor.IsApproved {
		return Outcome{}, nil
	}
	tutor.IsApproved = true
	tutor.SetSnapshot(Instantiate(cur))

	grad, err := e.CheckGraduation(ctx, tutor, nil)
	if err != nil {
		return Outcome{Changed: true}, err
	}
	return Outcome{Changed: true}.merge(grad), nil
}

// ════════════════════════════════════════════════════════════
// 完成事件
// ════════════════════════════════════════════════════════════
//
// mentor 为新人的当前导师（用于结业时回写导师统计），导师学员传 nil。
// 无快照时不做任何修改；下标越界返回 ErrNoSuchItem 且不修改快照。

// FinishExam 标记考试完成并记录分数
func (e *Engine) FinishExam(ctx context.Context, t Trainee, mentor *model.Tutor, examIndex int, score float64) (Outcome, error) {
	snap := t.Snapshot()
	if snap == nil {
		return Outcome{}, nil
	}
	if examIndex < 0 || examIndex >= len(snap.Exams) {
		return Outcome{}, fmt.Errorf("%w: 考试 #%d", ErrNoSuchItem, examIndex)
	}

	snap.Exams[examIndex].Finished = true
	snap.Exams[examIndex].Score = score
	t.SetSnapshot(snap)
	if n, ok := t.(*model.Newbie); ok {
		n.ExamAverageScore = AverageExamScore(snap)
	}

	return e.afterFinish(ctx, t, mentor)
}

// FinishTask 标记任务完成
func (e *Engine) FinishTask(ctx context.Context, t Trainee, mentor *model.Tutor, taskIndex int) (Outcome, error) {
	snap := t.Snapshot()
	if snap == nil {
		return Outcome{}, nil
	}
	if taskIndex < 0 || taskIndex >= len(snap.Tasks) {
		return Outcome{}, fmt.Errorf("%w: 任务 #%d", ErrNoSuchItem, taskIndex)
	}

	snap.Tasks[taskIndex].Finished = true
	t.SetSnapshot(snap)

	return e.afterFinish(ctx, t, mentor)
}

// FinishCourseSection 标记课程章节完成，并重算课程完成状态
func (e *Engine) FinishCourseSection(ctx context.Context, t Trainee, mentor *model.Tutor, courseIndex, sectionIndex int) (Outcome, error) {
	snap := t.Snapshot()
	if snap == nil {
		return Outcome{}, nil
	}
	if courseIndex < 0 || courseIndex >= len(snap.Courses) {
		return Outcome{}, fmt.Errorf("%w: 课程 #%d", ErrNoSuchItem, courseIndex)
	}
	course := &snap.Courses[courseIndex]
	if sectionIndex < 0 || sectionIndex >= len(course.Sections) {
		return Outcome{}, fmt.Errorf("%w: 课程 #%d 章节 #%d", ErrNoSuchItem, courseIndex, sectionIndex)
	}

	course.Sections[sectionIndex].Finished = true
	course.Finished = allSectionsFinished(course.Sections)
	t.SetSnapshot(snap)

	return e.afterFinish(ctx, t, mentor)
}

func (e *Engine) afterFinish(ctx context.Context, t Trainee, mentor *model.Tutor) (Outcome, error) {
	grad, err := e.CheckGraduation(ctx, t, mentor)
	if err != nil {
		return Outcome{Changed: true}, err
	}
	return Outcome{Changed: true}.merge(grad), nil
}

// AverageExamScore 已完成考试的平均分，无已完成考试时为 0
func AverageExamScore(snap *model.TrainingSnapshot) float64 {
	if snap == nil {
		return 0
	}
	var total float64
	var n int
	for _, ex := range snap.Exams {
		if ex.Finished {
			total += ex.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// [自证通过] internal/progression/engine.go
