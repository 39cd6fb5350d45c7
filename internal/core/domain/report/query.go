package report

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	ParamCycle     = "ciclo"
	ParamProfessor = "professor"
	ParamSearch    = "search"
	ParamPerPage   = "per_page"
	ParamPage      = "page"
	ParamFormat    = "formato"

	FormatCSV = "csv"
)

// Filter selects evaluations. Zero IDs and an empty search select everything.
type Filter struct {
	CycleID     int64
	ProfessorID int64
	Search      string
}

func (f Filter) Matches(ev *Evaluation) bool {
	if f.CycleID != 0 && ev.Cycle.ID != f.CycleID {
		return false
	}
	if f.ProfessorID != 0 && ev.Professor.ID != f.ProfessorID {
		return false
	}
	if f.Search == "" {
		return true
	}

	needle := fold(f.Search)
	for _, field := range []string{ev.Professor.Name, ev.Discipline, ev.ClassCode} {
		if strings.Contains(fold(field), needle) {
			return true
		}
	}
	return false
}

func fold(s string) string {
	return cases.Lower(language.BrazilianPortuguese).String(s)
}

// Query is the parsed query string of the evaluations report.
type Query struct {
	Filter
	PerPage int
	Page    string
	Format  string
}

func (q Query) WantsCSV() bool {
	return q.Format == FormatCSV
}

// ParseQuery reads the report parameters. A per_page outside sizes falls
// back to defaultSize; unparsable cycle or professor ids are ignored.
func ParseQuery(values url.Values, sizes []int, defaultSize int) Query {
	q := Query{
		Filter: Filter{
			CycleID:     parseID(values.Get(ParamCycle)),
			ProfessorID: parseID(values.Get(ParamProfessor)),
			Search:      strings.TrimSpace(values.Get(ParamSearch)),
		},
		PerPage: defaultSize,
		Page:    values.Get(ParamPage),
		Format:  strings.TrimSpace(values.Get(ParamFormat)),
	}

	if n, err := strconv.Atoi(strings.TrimSpace(values.Get(ParamPerPage))); err == nil && slices.Contains(sizes, n) {
		q.PerPage = n
	}

	return q
}

func parseID(raw string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}
