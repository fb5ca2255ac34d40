package progression

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"onboarding/backend/internal/model"
)

// PassScore 及格线（百分制）
const PassScore = 60.0

// emptyExamScore 无题目考试的得分。沿用既有行为按满分处理，待产品确认。
const emptyExamScore = 100.0

// Result 判题结果
type Result struct {
	Correct      []bool  `json:"correct"`
	CorrectCount int     `json:"correct_count"`
	Score        float64 `json:"score"`
	Passed       bool    `json:"passed"`
}

// ValidateAnswers 判题前校验：答案数与题目数一致、下标在选项范围内、单选最多一个答案
func ValidateAnswers(problems []model.Problem, answers [][]int) error {
	if len(answers) != len(problems) {
		return fmt.Errorf("%w: 需要 %d 个答案，实际 %d 个", ErrInvalidAnswer, len(problems), len(answers))
	}
	for i, p := range problems {
		if p.Type == model.ProblemSingle && len(answers[i]) > 1 {
			return fmt.Errorf("%w: 第 %d 题为单选题", ErrInvalidAnswer, i+1)
		}
		for _, idx := range answers[i] {
			if idx < 0 || idx >= len(p.Options) {
				return fmt.Errorf("%w: 第 %d 题选项 %d 不存在", ErrInvalidAnswer, i+1, idx)
			}
		}
	}
	return nil
}

// Judge 判题：逐题集合相等（与顺序无关、无部分得分），校验失败时不产生任何结果
func Judge(problems []model.Problem, answers [][]int) (Result, error) {
	if err := ValidateAnswers(problems, answers); err != nil {
		return Result{}, err
	}

	res := Result{Correct: make([]bool, len(problems))}
	for i, p := range problems {
		if sameSet(p.Answers, answers[i]) {
			res.Correct[i] = true
			res.CorrectCount++
		}
	}

	if len(problems) == 0 {
		res.Score = emptyExamScore
	} else {
		res.Score = 100 * float64(res.CorrectCount) / float64(len(problems))
	}
	res.Passed = res.Score >= PassScore
	return res, nil
}

func sameSet(want, got []int) bool {
	w := toSet(want)
	g := toSet(got)
	if len(w) != len(g) {
		return false
	}
	for k := range w {
		if !g[k] {
			return false
		}
	}
	return true
}

func toSet(xs []int) map[int]bool {
	m := make(map[int]bool, len(xs))
	for _, x := range xs {
		m[x] = true
	}
	return m
}

// ParseAnswerSpec 解析导入表格中的答案列
//
// 支持：单个字母 "B"；分隔列表 "A,C" / "1,3" / "A C" / "A、C"（数字从 1 开始）；
// 连续字母 "ABD" → [0 1 3]。结果去重并保持出现顺序。
func ParseAnswerSpec(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("答案为空")
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、' || r == ';' || r == '；' || unicode.IsSpace(r)
	})

	var out []int
	seen := make(map[int]bool)
	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			out = append(out, i)
		}
	}

	for _, tok := range tokens {
		switch {
		case isLetters(tok):
			for _, r := range strings.ToUpper(tok) {
				add(int(r - 'A'))
			}
		default:
			n, err := strconv.Atoi(tok)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("无法解析答案 %q", tok)
			}
			add(n - 1)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("无法解析答案 %q", s)
	}
	return out, nil
}

func isLetters(s string) bool {
	for _, r := range s {
		if !(r >= 'A' && r <= 'Z') && !(r >= 'a' && r <= 'z') {
			return false
		}
	}
	return s != ""
}
