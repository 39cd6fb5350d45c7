package reports

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"evalportal/internal/adapters/http/pages"
	"evalportal/internal/adapters/repository/memory"
	"evalportal/internal/adapters/repository/seed"
	"evalportal/internal/config"
	"evalportal/internal/core/domain/report"
	reportUsecase "evalportal/internal/core/usecase/report"
	"evalportal/internal/platform/csvexport"
	"evalportal/internal/platform/dom"
	"evalportal/internal/platform/logger"
)

type stubRecorder struct {
	mock.Mock
}

func (m *stubRecorder) RecordExport(ctx context.Context, kind string) {
	m.Called(ctx, kind)
}

type failingManager struct{}

func (failingManager) Report(context.Context, report.Query) (*reportUsecase.Page, error) {
	return nil, errors.New("connection reset")
}

func (failingManager) Export(context.Context, report.Filter) (*reportUsecase.Export, error) {
	return nil, errors.New("connection reset")
}

var pagesConfig = &config.PagesConfig{
	UsersPerPage:      15,
	ReportPerPage:     6,
	ReportPageSizes:   []int{6, 12, 24, 50},
	ExportMaxComments: 5,
	SearchDebounceMs:  500,
}

func newTestHandler(t *testing.T) (*Handler, *stubRecorder) {
	t.Helper()

	repo := memory.NewEvaluationRepository()
	for _, ev := range seed.Evaluations() {
		require.NoError(t, repo.Save(context.Background(), ev))
	}

	renderer, err := pages.NewRenderer()
	require.NoError(t, err)

	recorder := &stubRecorder{}
	recorder.Test(t)
	t.Cleanup(func() { recorder.AssertExpectations(t) })

	return NewHandler(reportUsecase.NewUsecase(repo), renderer, recorder, pagesConfig), recorder
}

func get(t *testing.T, fn func(http.ResponseWriter, *http.Request) error, target string) (*httptest.ResponseRecorder, error) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(logger.WithLogger(req.Context(), logger.NewNop()))
	w := httptest.NewRecorder()
	return w, fn(w, req)
}

func cards(t *testing.T, w *httptest.ResponseRecorder) (*html.Node, []string) {
	t.Helper()

	doc, err := dom.Parse(w.Body)
	require.NoError(t, err)

	var ids []string
	for _, card := range dom.QueryAll(doc, dom.MustCompile(".report-card")) {
		ids = append(ids, dom.AttrOr(card, "data-avaliacao", ""))
	}
	return doc, ids
}

func TestHandler_Evaluations(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{"everything with respondents", "", []string{"1", "2", "3"}},
		{"by cycle", "?ciclo=2", []string{"3"}},
		{"by professor", "?professor=2", []string{"2"}},
		{"by search term", "?search=c%C3%A1lculo", []string{"1", "3"}},
		{"search by class code", "?search=fis1", []string{"2"}},
		{"no matches", "?ciclo=2&professor=2", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestHandler(t)

			w, err := get(t, h.Evaluations, "/relatorios/avaliacoes"+tt.query)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))

			_, ids := cards(t, w)
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestHandler_Evaluations_FilterForm(t *testing.T) {
	h, _ := newTestHandler(t)

	w, err := get(t, h.Evaluations, "/relatorios/avaliacoes?ciclo=1&per_page=12&search=lima")
	require.NoError(t, err)

	doc, _ := cards(t, w)

	cycle := dom.QueryOne(doc, dom.MustCompile(`#filtro-ciclo option[selected]`))
	require.NotNil(t, cycle)
	assert.Equal(t, "2024.1", dom.Text(cycle))

	search := dom.ByID(doc, "search-avaliacoes")
	assert.Equal(t, "lima", dom.AttrOr(search, "value", ""))
	assert.Equal(t, "500", dom.AttrOr(search, "data-search-delay", ""))

	active := dom.QueryOne(doc, dom.MustCompile(".per-page a.active"))
	require.NotNil(t, active)
	assert.Equal(t, "12", dom.Text(active))

	export := dom.AttrOr(dom.QueryOne(doc, dom.MustCompile(".btn-export")), "href", "")
	assert.Contains(t, export, "formato=csv")
	assert.Contains(t, export, "ciclo=1")
	assert.Contains(t, export, "search=lima")

	clearURL := dom.AttrOr(dom.QueryOne(doc, dom.MustCompile(".btn-clear")), "href", "")
	assert.Equal(t, "/relatorios/avaliacoes", clearURL)
}

func TestHandler_Evaluations_Pagination(t *testing.T) {
	h, _ := newTestHandler(t)
	h.cfg = &config.PagesConfig{
		ReportPerPage:     2,
		ReportPageSizes:   []int{2, 6},
		ExportMaxComments: 5,
		SearchDebounceMs:  500,
	}

	w, err := get(t, h.Evaluations, "/relatorios/avaliacoes?page=2")
	require.NoError(t, err)

	doc, ids := cards(t, w)
	assert.Equal(t, []string{"3"}, ids)

	links := dom.QueryAll(doc, dom.MustCompile(".pagination a"))
	require.Len(t, links, 2)
	assert.True(t, dom.HasClass(links[1], "current"))
	assert.Contains(t, dom.AttrOr(links[0], "href", ""), "page=1")
}

func TestHandler_Evaluations_CSV(t *testing.T) {
	h, recorder := newTestHandler(t)
	recorder.On("RecordExport", mock.Anything, "avaliacoes").Once()

	w, err := get(t, h.Evaluations, "/relatorios/avaliacoes?formato=csv&ciclo=1")

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".csv")

	body := w.Body.String()
	assert.True(t, strings.HasPrefix(body, csvexport.BOM))
	assert.Contains(t, body, "Cálculo I")
	assert.Contains(t, body, "Física I")
	assert.NotContains(t, body, "Cálculo II")
	assert.NotContains(t, body, "<b>")
	assert.Contains(t, body, `'=HYPERLINK`)
}

func TestHandler_EvaluationsJSON(t *testing.T) {
	h, _ := newTestHandler(t)

	w, err := get(t, h.EvaluationsJSON, "/api/relatorios/avaliacoes?professor=1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Summaries []struct {
			ID int64 `json:"id"`
		} `json:"avaliacoes"`
		Cycles []report.Cycle `json:"ciclos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Summaries, 2)
	assert.Equal(t, int64(1), body.Summaries[0].ID)
	assert.Equal(t, int64(3), body.Summaries[1].ID)
	assert.Len(t, body.Cycles, 2)
}

func TestHandler_ManagerErrors(t *testing.T) {
	renderer, err := pages.NewRenderer()
	require.NoError(t, err)
	h := NewHandler(failingManager{}, renderer, &stubRecorder{}, pagesConfig)

	for _, target := range []string{"/relatorios/avaliacoes", "/relatorios/avaliacoes?formato=csv"} {
		w, err := get(t, h.Evaluations, target)
		assert.EqualError(t, err, "connection reset", target)
		assert.Zero(t, w.Body.Len(), target)
	}

	_, err = get(t, h.EvaluationsJSON, "/api/relatorios/avaliacoes")
	assert.Error(t, err)
}
