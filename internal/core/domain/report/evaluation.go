package report

import (
	"math"
	"slices"
	"sort"
	"strconv"
)

type QuestionKind string

const (
	KindMultipleChoice QuestionKind = "multipla_escolha"
	KindLikert         QuestionKind = "likert"
	KindNPS            QuestionKind = "nps"
	KindYesNo          QuestionKind = "sim_nao"
	KindFreeText       QuestionKind = "texto_livre"
)

func (k QuestionKind) DisplayName() string {
	switch k {
	case KindMultipleChoice:
		return "Múltipla Escolha"
	case KindLikert:
		return "Escala Likert"
	case KindNPS:
		return "NPS"
	case KindYesNo:
		return "Sim/Não"
	case KindFreeText:
		return "Texto Livre"
	default:
		return string(k)
	}
}

func (k QuestionKind) Numeric() bool {
	return k == KindLikert || k == KindNPS
}

// Scale is the answer scale of the standard questionnaire, worst first.
// An option weighs its position plus one.
var Scale = []string{"Não atende", "Insuficiente", "Regular", "Bom", "Excelente"}

const NotAvailable = "N/A"

type Cycle struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

func (c Cycle) GetID() int64 {
	return c.ID
}

type Professor struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

func (p Professor) GetID() int64 {
	return p.ID
}

// Question holds the aggregated answers of one questionnaire item. Multiple
// choice items use Counts keyed by Scale option; numeric items use Values.
type Question struct {
	Order  int            `json:"ordem"`
	Text   string         `json:"enunciado"`
	Kind   QuestionKind   `json:"tipo"`
	Counts map[string]int `json:"contagens,omitempty"`
	Values []int          `json:"valores,omitempty"`
}

type Evaluation struct {
	ID          int64      `json:"id"`
	Cycle       Cycle      `json:"ciclo"`
	Professor   Professor  `json:"professor"`
	Discipline  string     `json:"disciplina"`
	ClassCode   string     `json:"turma"`
	Period      string     `json:"periodo_letivo"`
	Enrolled    int        `json:"total_alunos"`
	Respondents int        `json:"respondentes"`
	Questions   []Question `json:"perguntas"`
	Comments    []string   `json:"comentarios"`
}

func (e *Evaluation) GetID() int64 {
	return e.ID
}

// QuestionStats is the computed line of one question in the report.
type QuestionStats struct {
	Question       Question `json:"pergunta"`
	Mean           float64  `json:"media"`
	Mode           string   `json:"moda"`
	Classification string   `json:"classificacao"`
	Total          int      `json:"total_respostas"`
}

// Stats computes the question line. It reports false when the question has
// no answers of its kind, in which case the report omits it.
func (q Question) Stats() (QuestionStats, bool) {
	switch {
	case q.Kind == KindMultipleChoice:
		return q.choiceStats()
	case q.Kind.Numeric():
		return q.numericStats()
	default:
		return QuestionStats{}, false
	}
}

func (q Question) choiceStats() (QuestionStats, bool) {
	total, weighted := 0, 0
	mode, modeCount := "", 0
	for i, option := range Scale {
		n := q.Counts[option]
		total += n
		weighted += n * (i + 1)
		if n > modeCount {
			mode, modeCount = option, n
		}
	}
	if total == 0 {
		return QuestionStats{}, false
	}

	mean := Round2(float64(weighted) / float64(total))
	return QuestionStats{
		Question:       q,
		Mean:           mean,
		Mode:           mode,
		Classification: Classify(mean),
		Total:          total,
	}, true
}

func (q Question) numericStats() (QuestionStats, bool) {
	if len(q.Values) == 0 {
		return QuestionStats{}, false
	}

	sum := 0
	freq := make(map[int]int, len(q.Values))
	for _, v := range q.Values {
		sum += v
		freq[v]++
	}

	keys := make([]int, 0, len(freq))
	for v := range freq {
		keys = append(keys, v)
	}
	sort.Ints(keys)
	mode := keys[0]
	for _, v := range keys {
		if freq[v] > freq[mode] {
			mode = v
		}
	}

	return QuestionStats{
		Question: q,
		Mean:     Round2(float64(sum) / float64(len(q.Values))),
		Mode:     strconv.Itoa(mode),
		Total:    len(q.Values),
	}, true
}

// ResponseRate is respondents over enrolled students, in percent with two
// decimals; zero when nobody is enrolled.
func (e *Evaluation) ResponseRate() float64 {
	if e.Enrolled <= 0 {
		return 0
	}
	return Round2(float64(e.Respondents) / float64(e.Enrolled) * 100)
}

// OverallMean averages every multiple choice answer of the evaluation. It
// reports false when there is none.
func (e *Evaluation) OverallMean() (float64, bool) {
	total, weighted := 0, 0
	for _, q := range e.Questions {
		if q.Kind != KindMultipleChoice {
			continue
		}
		for i, option := range Scale {
			total += q.Counts[option]
			weighted += q.Counts[option] * (i + 1)
		}
	}
	if total == 0 {
		return 0, false
	}
	return Round2(float64(weighted) / float64(total)), true
}

// OrderedQuestions returns the questions sorted by their questionnaire order.
func (e *Evaluation) OrderedQuestions() []Question {
	qs := slices.Clone(e.Questions)
	slices.SortStableFunc(qs, func(a, b Question) int { return a.Order - b.Order })
	return qs
}

// Classify maps a mean on the 1..5 scale to its Scale option.
func Classify(mean float64) string {
	switch {
	case mean < 1.5:
		return Scale[0]
	case mean < 2.5:
		return Scale[1]
	case mean < 3.5:
		return Scale[2]
	case mean < 4.5:
		return Scale[3]
	default:
		return Scale[4]
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// NumericMean averages every Likert and NPS answer across evs, rounded to two
// decimals; zero when there is none.
func NumericMean(evs []Evaluation) float64 {
	sum, n := 0, 0
	for _, ev := range evs {
		for _, q := range ev.Questions {
			if !q.Kind.Numeric() {
				continue
			}
			for _, v := range q.Values {
				sum += v
				n++
			}
		}
	}
	if n == 0 {
		return 0
	}
	return Round2(float64(sum) / float64(n))
}

// Summary is an evaluation with the figures shown on its report card.
type Summary struct {
	Evaluation
	ResponseRate   float64         `json:"taxa_resposta"`
	OverallMean    *float64        `json:"media_geral"`
	Classification string          `json:"classificacao_geral,omitempty"`
	QuestionStats  []QuestionStats `json:"estatisticas"`
}

func Summarize(ev Evaluation) Summary {
	s := Summary{
		Evaluation:    ev,
		ResponseRate:  ev.ResponseRate(),
		QuestionStats: []QuestionStats{},
	}
	if mean, ok := ev.OverallMean(); ok {
		s.OverallMean = &mean
		s.Classification = Classify(mean)
	}
	for _, q := range ev.OrderedQuestions() {
		if stats, ok := q.Stats(); ok {
			s.QuestionStats = append(s.QuestionStats, stats)
		}
	}
	return s
}
