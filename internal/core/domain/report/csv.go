package report

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"evalportal/internal/platform/csvexport"

	"github.com/microcosm-cc/bluemonday"
)

const filenamePrefix = "relatorio_avaliacoes"

var Header = []string{
	"Disciplina",
	"Professor",
	"Turma",
	"Período Letivo",
	"Ciclo",
	"Total Alunos",
	"Respondentes",
	"Taxa de Resposta (%)",
	"Média Geral",
	"Classificação Geral",
	"Pergunta",
	"Tipo Pergunta",
	"Média Pergunta",
	"Moda",
	"Classificação",
	"Não atende",
	"Insuficiente",
	"Regular",
	"Bom",
	"Excelente",
	"Total Respostas",
	"Comentários",
}

var (
	stripOnce   sync.Once
	stripPolicy *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	stripOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// StripMarkup removes every tag from free text, keeping entities decoded.
func StripMarkup(s string) string {
	return html.UnescapeString(strictPolicy().Sanitize(s))
}

// ExportFilename builds the download name from the active filters.
func ExportFilename(cycleName, professorName string, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(filenamePrefix)
	if cycleName != "" {
		sb.WriteString("_ciclo_")
		sb.WriteString(strings.ReplaceAll(cycleName, " ", "_"))
	}
	if professorName != "" {
		sb.WriteString("_prof_")
		sb.WriteString(strings.ReplaceAll(professorName, " ", "_"))
	}
	sb.WriteString("_")
	sb.WriteString(now.Format("20060102_150405"))
	sb.WriteString(".csv")
	return sb.String()
}

// CommentsCell joins at most limit comments with " | " and notes how many
// were left out.
func CommentsCell(comments []string, limit int) string {
	var kept []string
	for _, c := range comments {
		if len(kept) == limit {
			break
		}
		kept = append(kept, csvexport.Cell(StripMarkup(c)))
	}

	text := strings.Join(kept, " | ")
	if extra := len(comments) - len(kept); extra > 0 && limit >= 0 {
		text += fmt.Sprintf(" | ... (+%d comentários)", extra)
	}
	return text
}

// Rows renders one evaluation as CSV records: one per answered question, or
// a single placeholder row when the questionnaire has no questions. Comments
// go on the row of the first question only.
func Rows(ev *Evaluation, maxComments int) [][]string {
	comments := CommentsCell(ev.Comments, maxComments)

	overallMean, overallClass := NotAvailable, NotAvailable
	if mean, ok := ev.OverallMean(); ok {
		overallMean = formatFloat(mean)
		overallClass = Classify(mean)
	}

	base := []string{
		csvexport.Cell(ev.Discipline),
		csvexport.Cell(ev.Professor.Name),
		csvexport.Cell(ev.ClassCode),
		csvexport.Cell(ev.Period),
		csvexport.Cell(ev.Cycle.Name),
		strconv.Itoa(ev.Enrolled),
		strconv.Itoa(ev.Respondents),
		formatFloat(ev.ResponseRate()),
		overallMean,
		overallClass,
	}

	if len(ev.Questions) == 0 {
		row := append(cloneRow(base), repeat(NotAvailable, 11)...)
		return [][]string{append(row, comments)}
	}

	var rows [][]string
	for _, q := range ev.OrderedQuestions() {
		stats, ok := q.Stats()
		if !ok {
			continue
		}

		rowComments := ""
		if q.Order == 1 {
			rowComments = comments
		}

		row := append(cloneRow(base), csvexport.Cell(q.Text))
		if q.Kind == KindMultipleChoice {
			row = append(row,
				q.Kind.DisplayName(),
				formatFloat(stats.Mean),
				csvexport.Cell(stats.Mode),
				stats.Classification,
			)
			for _, option := range Scale {
				row = append(row, strconv.Itoa(q.Counts[option]))
			}
		} else {
			row = append(row, q.Kind.DisplayName(), formatFloat(stats.Mean), stats.Mode)
			row = append(row, repeat(NotAvailable, 6)...)
		}
		row = append(row, strconv.Itoa(stats.Total), rowComments)
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes the UTF-8 BOM, the header and the rows of every evaluation.
func WriteCSV(w io.Writer, evs []Evaluation, maxComments int) error {
	cw, err := csvexport.NewWriter(w, Header)
	if err != nil {
		return err
	}
	for i := range evs {
		if err := cw.WriteAll(Rows(&evs[i], maxComments)); err != nil {
			return fmt.Errorf("write evaluation %d: %w", evs[i].ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func cloneRow(row []string) []string {
	out := make([]string, len(row), len(Header))
	copy(out, row)
	return out
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
