package progression

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding/backend/internal/model"
)

func singleChoice(answer int, options ...string) model.Problem {
	return model.Problem{Type: model.ProblemSingle, Options: options, Answers: []int{answer}}
}

func multipleChoice(answers []int, options ...string) model.Problem {
	return model.Problem{Type: model.ProblemMultiple, Options: options, Answers: answers}
}

func TestJudge_EmptySelectionIsIncorrect(t *testing.T) {
	problems := []model.Problem{singleChoice(0, "对", "错")}

	res, err := Judge(problems, [][]int{{}})
	require.NoError(t, err)
	assert.Equal(t, []bool{false}, res.Correct)
	assert.Equal(t, 0, res.CorrectCount)
	assert.Equal(t, 0.0, res.Score)
	assert.False(t, res.Passed)
}

func TestJudge_SetEqualityIgnoresOrder(t *testing.T) {
	problems := []model.Problem{multipleChoice([]int{0, 2, 3}, "A", "B", "C", "D")}

	a, err := Judge(problems, [][]int{{3, 0, 2}})
	require.NoError(t, err)
	b, err := Judge(problems, [][]int{{0, 2, 3}})
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.True(t, a.Correct[0])
}

func TestJudge_NoPartialCredit(t *testing.T) {
	problems := []model.Problem{multipleChoice([]int{0, 1}, "A", "B", "C")}

	res, err := Judge(problems, [][]int{{0}})
	require.NoError(t, err)
	assert.False(t, res.Correct[0])

	res, err = Judge(problems, [][]int{{0, 1, 2}})
	require.NoError(t, err)
	assert.False(t, res.Correct[0])
}

func TestJudge_ScoreAndPassLine(t *testing.T) {
	problems := []model.Problem{
		singleChoice(0, "A", "B"),
		singleChoice(1, "A", "B"),
		singleChoice(0, "A", "B"),
		singleChoice(1, "A", "B"),
		multipleChoice([]int{0, 1}, "A", "B"),
	}

	res, err := Judge(problems, [][]int{{0}, {1}, {0}, {0}, {0}})
	require.NoError(t, err)
	assert.Equal(t, 3, res.CorrectCount)
	assert.Equal(t, 60.0, res.Score)
	assert.True(t, res.Passed)

	res, err = Judge(problems, [][]int{{0}, {1}, {1}, {0}, {0}})
	require.NoError(t, err)
	assert.Equal(t, 40.0, res.Score)
	assert.False(t, res.Passed)
}

func TestJudge_Deterministic(t *testing.T) {
	problems := []model.Problem{
		singleChoice(1, "A", "B", "C"),
		multipleChoice([]int{0, 2}, "A", "B", "C"),
	}
	answers := [][]int{{1}, {2, 0}}

	first, err := Judge(problems, answers)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Judge(problems, answers)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestJudge_ZeroProblems(t *testing.T) {
	res, err := Judge(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.Score)
	assert.True(t, res.Passed)
}

func TestValidateAnswers(t *testing.T) {
	problems := []model.Problem{
		singleChoice(0, "A", "B"),
		multipleChoice([]int{0, 1}, "A", "B", "C"),
	}

	tests := []struct {
		name    string
		answers [][]int
		wantErr bool
	}{
		{"合法", [][]int{{0}, {0, 2}}, false},
		{"答案数量不足", [][]int{{0}}, true},
		{"答案数量过多", [][]int{{0}, {1}, {1}}, true},
		{"选项越界", [][]int{{2}, {0}}, true},
		{"负数下标", [][]int{{0}, {-1}}, true},
		{"单选多答案", [][]int{{0, 1}, {0}}, true},
		{"空答案合法", [][]int{{}, {}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAnswers(problems, tt.answers)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAnswer)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJudge_InvalidSubmissionYieldsNoResult(t *testing.T) {
	problems := []model.Problem{singleChoice(0, "A", "B")}

	res, err := Judge(problems, [][]int{{0, 1}})
	assert.ErrorIs(t, err, ErrInvalidAnswer)
	assert.Equal(t, Result{}, res)
}

func TestParseAnswerSpec(t *testing.T) {
	tests := []struct {
		in   string
		want []int
	}{
		{"A", []int{0}},
		{"b", []int{1}},
		{"ABD", []int{0, 1, 3}},
		{"A,C", []int{0, 2}},
		{"A, C", []int{0, 2}},
		{"A、C", []int{0, 2}},
		{"A C D", []int{0, 2, 3}},
		{"1,3", []int{0, 2}},
		{"2", []int{1}},
		{"AAB", []int{0, 1}},
	}
	for _, tt := range tests {
		got, err := ParseAnswerSpec(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"", "  ", "0", "A1", "?", "x-y"} {
		_, err := ParseAnswerSpec(bad)
		assert.Error(t, err, bad)
	}
}
