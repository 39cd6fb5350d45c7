package reports

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"evalportal/internal/adapters/http/pages"
	"evalportal/internal/adapters/http/response"
	"evalportal/internal/config"
	"evalportal/internal/core/domain/report"
	reportUsecase "evalportal/internal/core/usecase/report"
	"evalportal/internal/platform/csvexport"
	"evalportal/internal/platform/logger"
)

const exportKind = "avaliacoes"

type Handler struct {
	manager  Manager
	renderer *pages.Renderer
	metrics  Recorder
	cfg      *config.PagesConfig
}

func NewHandler(manager Manager, renderer *pages.Renderer, metrics Recorder, cfg *config.PagesConfig) *Handler {
	return &Handler{
		manager:  manager,
		renderer: renderer,
		metrics:  metrics,
		cfg:      cfg,
	}
}

func (h *Handler) query(r *http.Request) report.Query {
	return report.ParseQuery(r.URL.Query(), h.cfg.ReportPageSizes, h.cfg.ReportPerPage)
}

// Evaluations renders the report page, or the CSV download when formato=csv.
func (h *Handler) Evaluations(w http.ResponseWriter, r *http.Request) error {
	q := h.query(r)
	if q.WantsCSV() {
		return h.export(w, r, q.Filter)
	}

	page, err := h.manager.Report(r.Context(), q)
	if err != nil {
		return err
	}

	doc, err := h.renderer.Document(pages.Report, pages.View{
		Title: "Relatório de Avaliações",
		Nav:   "relatorios",
		Body:  h.body(r.URL, page),
	})
	if err != nil {
		return err
	}
	return pages.Write(w, http.StatusOK, doc)
}

func (h *Handler) EvaluationsJSON(w http.ResponseWriter, r *http.Request) error {
	page, err := h.manager.Report(r.Context(), h.query(r))
	if err != nil {
		return err
	}

	response.RespondJSON(w, http.StatusOK, page)
	return nil
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request, filter report.Filter) error {
	contextLogger := logger.FromContext(r.Context())

	exp, err := h.manager.Export(r.Context(), filter)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := report.WriteCSV(&buf, exp.Evaluations, h.cfg.ExportMaxComments); err != nil {
		return fmt.Errorf("write evaluations csv: %w", err)
	}

	h.metrics.RecordExport(r.Context(), exportKind)
	contextLogger.Info("Evaluations exported", logger.String("filename", exp.Filename), logger.Int("bytes", buf.Len()))

	csvexport.SetHeaders(w, exp.Filename)
	w.WriteHeader(http.StatusOK)
	_, err = buf.WriteTo(w)
	return err
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type link struct {
	URL      string
	Label    string
	Selected bool
}

type reportBody struct {
	Report           *reportUsecase.Page
	Search           string
	PerPage          int
	SearchDelayMs    int
	CycleOptions     []option
	ProfessorOptions []option
	PerPageLinks     []link
	PageLinks        []link
	ClearURL         string
	ExportURL        string
}

func (h *Handler) body(current *url.URL, page *reportUsecase.Page) reportBody {
	q := page.Query

	// The filter form holds the values the report was built from.
	form := url.Values{}
	if q.CycleID != 0 {
		form.Set(report.ParamCycle, strconv.FormatInt(q.CycleID, 10))
	}
	if q.ProfessorID != 0 {
		form.Set(report.ParamProfessor, strconv.FormatInt(q.ProfessorID, 10))
	}
	form.Set(report.ParamSearch, q.Search)

	b := reportBody{
		Report:        page,
		Search:        q.Search,
		PerPage:       q.PerPage,
		SearchDelayMs: h.cfg.SearchDebounceMs,
		ClearURL:      report.ClearFiltersURL(current),
		ExportURL:     report.ExportURL(current, form),
	}

	for _, c := range page.Cycles {
		b.CycleOptions = append(b.CycleOptions, option{
			Value:    strconv.FormatInt(c.ID, 10),
			Label:    c.Name,
			Selected: c.ID == q.CycleID,
		})
	}
	for _, p := range page.Professors {
		b.ProfessorOptions = append(b.ProfessorOptions, option{
			Value:    strconv.FormatInt(p.ID, 10),
			Label:    p.Name,
			Selected: p.ID == q.ProfessorID,
		})
	}
	for _, size := range h.cfg.ReportPageSizes {
		b.PerPageLinks = append(b.PerPageLinks, link{
			URL:      report.PerPageURL(current, form, size),
			Label:    strconv.Itoa(size),
			Selected: size == q.PerPage,
		})
	}
	for _, n := range page.Page.Numbers() {
		b.PageLinks = append(b.PageLinks, link{
			URL:      report.PageURL(current, n),
			Label:    strconv.Itoa(n),
			Selected: n == page.Page.Number,
		})
	}

	return b
}
