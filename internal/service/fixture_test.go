package service

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"onboarding/backend/config"
	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
)

const (
	testDivision = "div-rd"
	testNewbie   = "u-newbie"
	testMentorA  = "u-mentor-a"
	testMentorB  = "u-mentor-b"
	testTutor    = "u-tutor"
)

// testWorld 一个组织、一名新人、两名已结业导师、一名待审批导师，
// 新人模板：1 场考试（2 选项，答案 {0}）+ 1 个任务 + 1 门必修课（1 章节）+ 1 门选修课
type testWorld struct {
	svc *Service
	m   *mockRepos
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	repo, m := newMockRepos()

	m.divisions.divisions[testDivision] = &model.Division{DivisionID: testDivision, Name: "研发部"}
	for _, id := range []string{testNewbie, testMentorA, testMentorB, testTutor} {
		m.users.users[id] = &model.User{UserID: id, Name: "姓名-" + id, Email: id + "@corp.com", DivisionID: testDivision}
	}

	m.exams.exams["exam-1"] = &model.Exam{
		ExamID: "exam-1",
		Title:  "入职考试",
		Problems: datatypes.NewJSONType([]model.Problem{
			{Type: model.ProblemSingle, Content: "是否理解？", Options: []string{"是", "否"}, Answers: []int{0}},
		}),
	}
	m.tasks.tasks["task-1"] = &model.Task{TaskID: "task-1", Title: "配置开发环境"}
	m.courses.courses["course-1"] = &model.Course{
		CourseID: "course-1",
		Title:    "公司文化",
		Sections: datatypes.NewJSONType([]model.CourseSection{{SectionID: "sec-1", Title: "价值观"}}),
	}
	m.courses.courses["course-opt"] = &model.Course{
		CourseID: "course-opt",
		Title:    "选修：摄影",
		Sections: datatypes.NewJSONType([]model.CourseSection{{SectionID: "sec-opt", Title: "构图"}}),
	}

	m.templates.templates[tplKey(model.KindNewbie, testDivision)] = &model.CurriculumTemplate{
		TemplateID: "tpl-newbie",
		Kind:       model.KindNewbie,
		DivisionID: testDivision,
		Content: datatypes.NewJSONType(model.TemplateContent{
			Exams: []model.ExamRef{{ID: "exam-1", Day: 1, Tags: []string{"基础"}}},
			Tasks: []model.TaskRef{{ID: "task-1", Day: 2}},
			Courses: []model.CourseRef{
				{ID: "course-1", Day: 3},
				{ID: "course-opt", Day: 5, IsOptional: true},
			},
		}),
	}
	m.templates.templates[tplKey(model.KindTutor, testDivision)] = &model.CurriculumTemplate{
		TemplateID: "tpl-tutor",
		Kind:       model.KindTutor,
		DivisionID: testDivision,
		Content: datatypes.NewJSONType(model.TemplateContent{
			Tasks: []model.TaskRef{{ID: "task-1", Day: 1}},
		}),
	}

	n := &model.Newbie{UserID: testNewbie}
	n.IsExist, n.Version = true, 1
	m.newbies.rows[testNewbie] = n

	for _, id := range []string{testMentorA, testMentorB} {
		tu := &model.Tutor{UserID: id, IsApproved: true, IsGraduate: true}
		tu.IsExist, tu.Version = true, 1
		m.tutors.rows[id] = tu
	}
	pending := &model.Tutor{UserID: testTutor}
	pending.IsExist, pending.Version = true, 1
	m.tutors.rows[testTutor] = pending

	cfg := &config.Config{Training: config.TrainingConfig{ImportMaxRows: 10}}
	return &testWorld{svc: NewService(cfg, repo, nil, zap.NewNop()), m: m}
}

func (w *testWorld) newbie() *model.Newbie { return w.m.newbies.rows[testNewbie] }

func (w *testWorld) tutor(id string) *model.Tutor { return w.m.tutors.rows[id] }

func (w *testWorld) assign(t *testing.T, mentorID string) {
	t.Helper()
	if _, err := w.svc.Mentor.AssignMentor(context.Background(), testNewbie, &dto.AssignMentorRequest{MentorID: mentorID}, "u-hrbp"); err != nil {
		t.Fatalf("分配导师失败: %v", err)
	}
}

func emptyContent() datatypes.JSONType[model.TemplateContent] {
	return datatypes.NewJSONType(model.TemplateContent{
		Exams:   []model.ExamRef{},
		Tasks:   []model.TaskRef{},
		Courses: []model.CourseRef{},
	})
}
