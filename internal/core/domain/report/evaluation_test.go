package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func choice(order int, text string, counts ...int) Question {
	q := Question{Order: order, Text: text, Kind: KindMultipleChoice, Counts: map[string]int{}}
	for i, n := range counts {
		q.Counts[Scale[i]] = n
	}
	return q
}

func TestClassify(t *testing.T) {
	tests := []struct {
		mean     float64
		expected string
	}{
		{1, "Não atende"},
		{1.49, "Não atende"},
		{1.5, "Insuficiente"},
		{2.49, "Insuficiente"},
		{2.5, "Regular"},
		{3.5, "Bom"},
		{4.49, "Bom"},
		{4.5, "Excelente"},
		{5, "Excelente"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Classify(tt.mean), "mean %v", tt.mean)
	}
}

func TestQuestion_ChoiceStats(t *testing.T) {
	q := choice(1, "Domínio do conteúdo", 0, 1, 1, 4, 4)

	stats, ok := q.Stats()
	require.True(t, ok)
	assert.Equal(t, 4.1, stats.Mean)
	assert.Equal(t, "Bom", stats.Mode, "ties resolve to the first option on the scale")
	assert.Equal(t, "Bom", stats.Classification)
	assert.Equal(t, 10, stats.Total)

	_, ok = choice(2, "Sem respostas").Stats()
	assert.False(t, ok)
}

func TestQuestion_NumericStats(t *testing.T) {
	q := Question{Order: 2, Kind: KindLikert, Values: []int{5, 4, 4, 2, 5}}

	stats, ok := q.Stats()
	require.True(t, ok)
	assert.Equal(t, 4.0, stats.Mean)
	assert.Equal(t, "4", stats.Mode)
	assert.Equal(t, 5, stats.Total)
	assert.Empty(t, stats.Classification)

	_, ok = Question{Kind: KindNPS}.Stats()
	assert.False(t, ok)
	_, ok = Question{Kind: KindFreeText, Values: []int{1}}.Stats()
	assert.False(t, ok)
}

func TestEvaluation_ResponseRate(t *testing.T) {
	assert.Equal(t, 66.67, (&Evaluation{Enrolled: 3, Respondents: 2}).ResponseRate())
	assert.Equal(t, 100.0, (&Evaluation{Enrolled: 4, Respondents: 4}).ResponseRate())
	assert.Equal(t, 0.0, (&Evaluation{Enrolled: 0, Respondents: 2}).ResponseRate())
}

func TestEvaluation_OverallMean(t *testing.T) {
	ev := &Evaluation{Questions: []Question{
		choice(1, "a", 0, 0, 0, 0, 2),
		choice(2, "b", 0, 0, 2),
		{Order: 3, Kind: KindNPS, Values: []int{10, 0}},
	}}

	mean, ok := ev.OverallMean()
	require.True(t, ok)
	assert.Equal(t, 4.0, mean)

	_, ok = (&Evaluation{Questions: []Question{{Kind: KindLikert, Values: []int{3}}}}).OverallMean()
	assert.False(t, ok)
}

func TestEvaluation_OrderedQuestions(t *testing.T) {
	ev := &Evaluation{Questions: []Question{{Order: 3, Text: "c"}, {Order: 1, Text: "a"}, {Order: 2, Text: "b"}}}

	ordered := ev.OrderedQuestions()

	assert.Equal(t, "a", ordered[0].Text)
	assert.Equal(t, "c", ordered[2].Text)
	assert.Equal(t, "c", ev.Questions[0].Text)
}

func TestNumericMean(t *testing.T) {
	evs := []Evaluation{
		{Questions: []Question{{Kind: KindLikert, Values: []int{5, 4}}, choice(1, "x", 1)}},
		{Questions: []Question{{Kind: KindNPS, Values: []int{9}}}},
	}

	assert.Equal(t, 6.0, NumericMean(evs))
	assert.Equal(t, 0.0, NumericMean(nil))
}

func TestQuestionKind_DisplayName(t *testing.T) {
	assert.Equal(t, "Múltipla Escolha", KindMultipleChoice.DisplayName())
	assert.Equal(t, "Escala Likert", KindLikert.DisplayName())
	assert.Equal(t, "outro", QuestionKind("outro").DisplayName())
}

func TestSummarize(t *testing.T) {
	ev := Evaluation{
		Enrolled:    4,
		Respondents: 3,
		Questions: []Question{
			{Order: 2, Kind: KindNPS, Values: []int{8}},
			choice(1, "Didática", 0, 0, 3),
			{Order: 3, Kind: KindYesNo},
		},
	}

	s := Summarize(ev)

	assert.Equal(t, 75.0, s.ResponseRate)
	require.NotNil(t, s.OverallMean)
	assert.Equal(t, 3.0, *s.OverallMean)
	assert.Equal(t, "Regular", s.Classification)
	require.Len(t, s.QuestionStats, 2)
	assert.Equal(t, "Didática", s.QuestionStats[0].Question.Text)

	empty := Summarize(Evaluation{})
	assert.Nil(t, empty.OverallMean)
	assert.Empty(t, empty.Classification)
	assert.NotNil(t, empty.QuestionStats)
}
