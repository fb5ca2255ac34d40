package progression

import (
	"context"

	"onboarding/backend/internal/model"
)

// CheckGraduation 结业检查（幂等）
//
//  1. 已结业 → 不变
//  2. 无快照 → 不变
//  3. 导师学员须已审批，否则不变
//  4. 任一考试、任务、必修课未完成 → 不变（选修课不阻塞）
//  5. 新人须存在针对当前导师的 newbie_to_mentor 评价（评价对象为前任导师时视为缺失）
//  6. 通过：置结业并记录时间；新人将评价分计入导师统计
//
// 导师统计只在未结业 → 结业的转移上写一次，重复调用不会再次修改。
func (e *Engine) CheckGraduation(ctx context.Context, t Trainee, mentor *model.Tutor) (Outcome, error) {
	if t.Graduated() {
		return Outcome{}, nil
	}
	snap := t.Snapshot()
	if snap == nil {
		return Outcome{}, nil
	}
	if tutor, ok := t.(*model.Tutor); ok && !tutor.IsApproved {
		return Outcome{}, nil
	}
	if !MandatoryFinished(snap) {
		return Outcome{}, nil
	}

	switch v := t.(type) {
	case *model.Newbie:
		review, err := e.reviews.FindReview(ctx, v.UserID, model.ReviewNewbieToMentor)
		if err != nil {
			return Outcome{}, err
		}
		if review == nil || v.MentorID == nil || review.TargetID != *v.MentorID {
			return Outcome{}, nil
		}
		v.MarkGraduated(e.now())
		out := Outcome{Changed: true, Graduated: true}
		if mentor != nil && v.MentorID != nil && *v.MentorID == mentor.UserID {
			creditMentor(mentor, review.Score)
			out.MentorTouched = true
		}
		return out, nil
	case *model.Tutor:
		v.MarkGraduated(e.now())
		return Outcome{Changed: true, Graduated: true}, nil
	}
	return Outcome{}, nil
}

// MandatoryFinished 所有考试、任务、必修课均已完成
func MandatoryFinished(snap *model.TrainingSnapshot) bool {
	for _, ex := range snap.Exams {
		if !ex.Finished {
			return false
		}
	}
	for _, task := range snap.Tasks {
		if !task.Finished {
			return false
		}
	}
	for _, c := range snap.Courses {
		if !c.IsOptional && !c.Finished {
			return false
		}
	}
	return true
}

// creditMentor 新人结业时将其对导师的评分计入导师累计分与平均分
func creditMentor(mentor *model.Tutor, score float64) {
	mentor.TotalScore += score
	mentor.GraduateNewbieCount++
	mentor.AverageScore = mentor.TotalScore / float64(mentor.GraduateNewbieCount)
}
