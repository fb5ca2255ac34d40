package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"onboarding/backend/internal/model"
	"onboarding/backend/internal/repository"
	pkgerrors "onboarding/backend/pkg/errors"
)

// 学员 mock 保存副本并校验版本号，模拟数据库的读写隔离与乐观锁

func cloneSnapshot(snap *model.TrainingSnapshot) *model.TrainingSnapshot {
	if snap == nil {
		return nil
	}
	raw, _ := json.Marshal(snap)
	var out model.TrainingSnapshot
	_ = json.Unmarshal(raw, &out)
	return &out
}

func cloneNewbie(n *model.Newbie) *model.Newbie {
	c := *n
	c.SetSnapshot(cloneSnapshot(n.Snapshot()))
	if n.MentorID != nil {
		id := *n.MentorID
		c.MentorID = &id
	}
	return &c
}

func cloneTutor(t *model.Tutor) *model.Tutor {
	c := *t
	c.SetSnapshot(cloneSnapshot(t.Snapshot()))
	return &c
}

// ── Mock NewbieRepository ──

type mockNewbieRepo struct {
	rows  map[string]*model.Newbie
	users *mockUserRepo
}

func newMockNewbieRepo(users *mockUserRepo) *mockNewbieRepo {
	return &mockNewbieRepo{rows: make(map[string]*model.Newbie), users: users}
}

func (m *mockNewbieRepo) Create(_ context.Context, n *model.Newbie) error {
	if _, ok := m.rows[n.UserID]; ok {
		return pkgerrors.ErrDuplicate
	}
	m.rows[n.UserID] = cloneNewbie(n)
	return nil
}

func (m *mockNewbieRepo) GetByID(_ context.Context, id string) (*model.Newbie, error) {
	if n, ok := m.rows[id]; ok {
		return cloneNewbie(n), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockNewbieRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Newbie, error) {
	return m.GetByID(ctx, id)
}

func (m *mockNewbieRepo) Update(_ context.Context, n *model.Newbie) error {
	cur, ok := m.rows[n.UserID]
	if !ok || cur.Version != n.Version {
		return pkgerrors.ErrOptimisticLock
	}
	n.Version++
	m.rows[n.UserID] = cloneNewbie(n)
	return nil
}

func (m *mockNewbieRepo) ListByDivision(_ context.Context, divisionID string) ([]model.Newbie, error) {
	var result []model.Newbie
	for _, n := range m.rows {
		u, ok := m.users.users[n.UserID]
		if !ok || u.DivisionID != divisionID || !n.IsExist {
			continue
		}
		c := cloneNewbie(n)
		c.User = u
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockNewbieRepo) PageByDivision(ctx context.Context, divisionID string, offset, limit int) ([]model.Newbie, int64, error) {
	all, _ := m.ListByDivision(ctx, divisionID)
	sort.Slice(all, func(i, j int) bool { return all[i].User.Name < all[j].User.Name })
	total := int64(len(all))
	if offset >= len(all) {
		return []model.Newbie{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// ── Mock TutorRepository ──

type mockTutorRepo struct {
	rows map[string]*model.Tutor
}

func newMockTutorRepo() *mockTutorRepo {
	return &mockTutorRepo{rows: make(map[string]*model.Tutor)}
}

func (m *mockTutorRepo) Create(_ context.Context, t *model.Tutor) error {
	if _, ok := m.rows[t.UserID]; ok {
		return pkgerrors.ErrDuplicate
	}
	m.rows[t.UserID] = cloneTutor(t)
	return nil
}

func (m *mockTutorRepo) GetByID(_ context.Context, id string) (*model.Tutor, error) {
	if t, ok := m.rows[id]; ok {
		return cloneTutor(t), nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTutorRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.Tutor, error) {
	return m.GetByID(ctx, id)
}

func (m *mockTutorRepo) Update(_ context.Context, t *model.Tutor) error {
	cur, ok := m.rows[t.UserID]
	if !ok || cur.Version != t.Version {
		return pkgerrors.ErrOptimisticLock
	}
	t.Version++
	m.rows[t.UserID] = cloneTutor(t)
	return nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) ListByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock DivisionRepository ──

type mockDivisionRepo struct {
	divisions map[string]*model.Division
	seq       int
}

func newMockDivisionRepo() *mockDivisionRepo {
	return &mockDivisionRepo{divisions: make(map[string]*model.Division)}
}

func (m *mockDivisionRepo) Create(_ context.Context, d *model.Division) error {
	if d.DivisionID == "" {
		m.seq++
		d.DivisionID = fmt.Sprintf("div-%d", m.seq)
	}
	m.divisions[d.DivisionID] = d
	return nil
}

func (m *mockDivisionRepo) GetByID(_ context.Context, id string) (*model.Division, error) {
	if d, ok := m.divisions[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDivisionRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.divisions, id)
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	templates map[string]*model.CurriculumTemplate // key: kind:division
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{templates: make(map[string]*model.CurriculumTemplate)}
}

func tplKey(kind model.TraineeKind, divisionID string) string {
	return string(kind) + ":" + divisionID
}

func (m *mockTemplateRepo) Create(_ context.Context, tpl *model.CurriculumTemplate) error {
	key := tplKey(tpl.Kind, tpl.DivisionID)
	if _, ok := m.templates[key]; ok {
		return pkgerrors.ErrDuplicate
	}
	if tpl.TemplateID == "" {
		tpl.TemplateID = "tpl-" + key
	}
	m.templates[key] = tpl
	return nil
}

func (m *mockTemplateRepo) Get(_ context.Context, kind model.TraineeKind, divisionID string) (*model.CurriculumTemplate, error) {
	if tpl, ok := m.templates[tplKey(kind, divisionID)]; ok {
		c := *tpl
		return &c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTemplateRepo) UpdateContent(_ context.Context, tpl *model.CurriculumTemplate) error {
	key := tplKey(tpl.Kind, tpl.DivisionID)
	if _, ok := m.templates[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	c := *tpl
	m.templates[key] = &c
	return nil
}

func (m *mockTemplateRepo) DeleteByDivision(_ context.Context, divisionID string) error {
	for key, tpl := range m.templates {
		if tpl.DivisionID == divisionID {
			delete(m.templates, key)
		}
	}
	return nil
}

// ── Mock 目录 Repository ──

type mockExamRepo struct {
	exams map[string]*model.Exam
	seq   int
}

func newMockExamRepo() *mockExamRepo {
	return &mockExamRepo{exams: make(map[string]*model.Exam)}
}

func (m *mockExamRepo) Create(_ context.Context, e *model.Exam) error {
	if e.ExamID == "" {
		m.seq++
		e.ExamID = fmt.Sprintf("exam-%d", m.seq)
	}
	m.exams[e.ExamID] = e
	return nil
}

func (m *mockExamRepo) GetByID(_ context.Context, id string) (*model.Exam, error) {
	if e, ok := m.exams[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockExamRepo) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.exams[id]; ok {
			n++
		}
	}
	return n, nil
}

type mockTaskRepo struct {
	tasks map[string]*model.Task
}

func newMockTaskRepo() *mockTaskRepo {
	return &mockTaskRepo{tasks: make(map[string]*model.Task)}
}

func (m *mockTaskRepo) Create(_ context.Context, t *model.Task) error {
	m.tasks[t.TaskID] = t
	return nil
}

func (m *mockTaskRepo) GetByID(_ context.Context, id string) (*model.Task, error) {
	if t, ok := m.tasks[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTaskRepo) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.tasks[id]; ok {
			n++
		}
	}
	return n, nil
}

type mockCourseRepo struct {
	courses map[string]*model.Course
}

func newMockCourseRepo() *mockCourseRepo {
	return &mockCourseRepo{courses: make(map[string]*model.Course)}
}

func (m *mockCourseRepo) Create(_ context.Context, c *model.Course) error {
	m.courses[c.CourseID] = c
	return nil
}

func (m *mockCourseRepo) GetByID(_ context.Context, id string) (*model.Course, error) {
	if c, ok := m.courses[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockCourseRepo) ListByIDs(_ context.Context, ids []string) ([]model.Course, error) {
	var result []model.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (m *mockCourseRepo) CountByIDs(_ context.Context, ids []string) (int64, error) {
	var n int64
	for _, id := range ids {
		if _, ok := m.courses[id]; ok {
			n++
		}
	}
	return n, nil
}

// ── Mock ReviewRepository ──

type mockReviewRepo struct {
	reviews map[string]*model.Review // key: trainee:kind
	seq     int
}

func newMockReviewRepo() *mockReviewRepo {
	return &mockReviewRepo{reviews: make(map[string]*model.Review)}
}

func (m *mockReviewRepo) Create(_ context.Context, r *model.Review) error {
	key := r.TraineeID + ":" + string(r.Kind)
	if _, ok := m.reviews[key]; ok {
		return pkgerrors.ErrDuplicate
	}
	m.seq++
	r.ReviewID = fmt.Sprintf("review-%d", m.seq)
	m.reviews[key] = r
	return nil
}

func (m *mockReviewRepo) Update(_ context.Context, r *model.Review) error {
	key := r.TraineeID + ":" + string(r.Kind)
	old, ok := m.reviews[key]
	if !ok || old.ReviewID != r.ReviewID {
		return fmt.Errorf("review %s not found", r.ReviewID)
	}
	cp := *r
	m.reviews[key] = &cp
	return nil
}

func (m *mockReviewRepo) FindReview(_ context.Context, traineeID string, kind model.ReviewKind) (*model.Review, error) {
	return m.reviews[traineeID+":"+string(kind)], nil
}

// ── 聚合 ──

type mockRepos struct {
	users     *mockUserRepo
	divisions *mockDivisionRepo
	templates *mockTemplateRepo
	newbies   *mockNewbieRepo
	tutors    *mockTutorRepo
	exams     *mockExamRepo
	tasks     *mockTaskRepo
	courses   *mockCourseRepo
	reviews   *mockReviewRepo
}

func newMockRepos() (*repository.Repository, *mockRepos) {
	users := newMockUserRepo()
	m := &mockRepos{
		users:     users,
		divisions: newMockDivisionRepo(),
		templates: newMockTemplateRepo(),
		newbies:   newMockNewbieRepo(users),
		tutors:    newMockTutorRepo(),
		exams:     newMockExamRepo(),
		tasks:     newMockTaskRepo(),
		courses:   newMockCourseRepo(),
		reviews:   newMockReviewRepo(),
	}
	repo := &repository.Repository{
		Division: m.divisions,
		User:     m.users,
		Template: m.templates,
		Newbie:   m.newbies,
		Tutor:    m.tutors,
		Exam:     m.exams,
		Task:     m.tasks,
		Course:   m.courses,
		Review:   m.reviews,
	}
	return repo, m
}
