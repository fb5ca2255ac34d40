package service

import (
	"context"
	"errors"
	"testing"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
)

func TestDivisionService_CreateAndDelete(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	resp, err := w.svc.Division.Create(ctx, &dto.CreateDivisionRequest{Name: "市场部"}, "u-admin")
	if err != nil {
		t.Fatalf("创建组织失败: %v", err)
	}
	for _, kind := range []model.TraineeKind{model.KindNewbie, model.KindTutor} {
		tpl, ok := w.m.templates.templates[tplKey(kind, resp.DivisionID)]
		if !ok {
			t.Fatalf("未创建 %s 模板", kind)
		}
		c := tpl.Content.Data()
		if c.Exams == nil || c.Tasks == nil || c.Courses == nil || len(c.Exams)+len(c.Tasks)+len(c.Courses) != 0 {
			t.Errorf("%s 模板应为空列表: %+v", kind, c)
		}
	}

	if err := w.svc.Division.Delete(ctx, resp.DivisionID, "u-admin"); err != nil {
		t.Fatalf("删除组织失败: %v", err)
	}
	if _, ok := w.m.templates.templates[tplKey(model.KindNewbie, resp.DivisionID)]; ok {
		t.Error("删除组织应同时删除模板")
	}
	if err := w.svc.Division.Delete(ctx, resp.DivisionID, "u-admin"); !errors.Is(err, ErrDivisionNotFound) {
		t.Errorf("期望 ErrDivisionNotFound，实际: %v", err)
	}
}

func TestDivisionService_Create_ParentMissing(t *testing.T) {
	w := newTestWorld(t)
	parent := "div-ghost"

	_, err := w.svc.Division.Create(context.Background(), &dto.CreateDivisionRequest{Name: "子部门", ParentID: &parent}, "u-admin")
	if !errors.Is(err, ErrDivisionNotFound) {
		t.Errorf("期望 ErrDivisionNotFound，实际: %v", err)
	}
}
