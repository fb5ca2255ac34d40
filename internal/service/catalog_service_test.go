package service

import (
	"context"
	"errors"
	"testing"
)

func TestCatalogService_ExistsAll(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	tests := []struct {
		name string
		kind ItemKind
		ids  []string
		want bool
	}{
		{"空列表", ItemExam, nil, true},
		{"全部存在", ItemCourse, []string{"course-1", "course-opt"}, true},
		{"重复 ID", ItemTask, []string{"task-1", "task-1"}, true},
		{"部分缺失", ItemExam, []string{"exam-1", "exam-2"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := w.svc.Catalog.ExistsAll(ctx, tt.kind, tt.ids)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}

	if _, err := w.svc.Catalog.ExistsAll(ctx, ItemKind("video"), []string{"x"}); !errors.Is(err, ErrCatalogKindInvalid) {
		t.Errorf("期望 ErrCatalogKindInvalid，实际: %v", err)
	}
}

func TestCatalogService_Render(t *testing.T) {
	w := newTestWorld(t)
	ctx := context.Background()

	item, err := w.svc.Catalog.Render(ctx, ItemCourse, "course-1")
	if err != nil {
		t.Fatalf("渲染失败: %v", err)
	}
	if item.Title != "公司文化" || len(item.Sections) != 1 || item.Sections[0].ID != "sec-1" {
		t.Errorf("渲染结果不符: %+v", item)
	}

	if _, err := w.svc.Catalog.Render(ctx, ItemExam, "exam-404"); !errors.Is(err, ErrCatalogItemNotFound) {
		t.Errorf("期望 ErrCatalogItemNotFound，实际: %v", err)
	}
}
