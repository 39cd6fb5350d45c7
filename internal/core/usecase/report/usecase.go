package report

import (
	"context"
	"fmt"
	"time"

	"evalportal/internal/core/domain/paging"
	"evalportal/internal/core/domain/report"
	"evalportal/internal/core/ports"
	"evalportal/internal/platform/logger"
)

type Usecase struct {
	repo ports.EvaluationRepository
	now  func() time.Time
}

func NewUsecase(repo ports.EvaluationRepository) *Usecase {
	return &Usecase{
		repo: repo,
		now:  time.Now,
	}
}

// Page is one page of the evaluations report with the filter options.
type Page struct {
	Query       report.Query       `json:"-"`
	Summaries   []report.Summary   `json:"avaliacoes"`
	Page        paging.Page        `json:"page"`
	NumericMean float64            `json:"media_geral"`
	Cycles      []report.Cycle     `json:"ciclos"`
	Professors  []report.Professor `json:"professores"`
}

func (uc *Usecase) Report(ctx context.Context, q report.Query) (*Page, error) {
	log := logger.FromContext(ctx)
	log.Debug("Building evaluations report",
		logger.Int64("cycle_id", q.CycleID),
		logger.Int64("professor_id", q.ProfessorID),
		logger.String("search", q.Search),
		logger.Int("per_page", q.PerPage),
	)

	evs, err := uc.repo.Find(ctx, q.Filter)
	if err != nil {
		return nil, fmt.Errorf("find evaluations: %w", err)
	}

	cycles, professors, err := uc.options(ctx)
	if err != nil {
		return nil, err
	}

	page := paging.New(len(evs), q.PerPage, q.Page)
	onPage := paging.Slice(evs, page)
	summaries := make([]report.Summary, len(onPage))
	for i, ev := range onPage {
		summaries[i] = report.Summarize(ev)
	}

	return &Page{
		Query:       q,
		Summaries:   summaries,
		Page:        page,
		NumericMean: report.NumericMean(evs),
		Cycles:      cycles,
		Professors:  professors,
	}, nil
}

// Export is the unpaginated report download.
type Export struct {
	Filename    string
	Evaluations []report.Evaluation
}

func (uc *Usecase) Export(ctx context.Context, filter report.Filter) (*Export, error) {
	log := logger.FromContext(ctx)

	evs, err := uc.repo.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find evaluations: %w", err)
	}

	cycles, professors, err := uc.options(ctx)
	if err != nil {
		return nil, err
	}

	var cycleName, professorName string
	for _, c := range cycles {
		if filter.CycleID != 0 && c.ID == filter.CycleID {
			cycleName = c.Name
		}
	}
	for _, p := range professors {
		if filter.ProfessorID != 0 && p.ID == filter.ProfessorID {
			professorName = p.Name
		}
	}

	filename := report.ExportFilename(cycleName, professorName, uc.now())
	log.Info("Exporting evaluations", logger.String("filename", filename), logger.Int("evaluations", len(evs)))

	return &Export{Filename: filename, Evaluations: evs}, nil
}

func (uc *Usecase) options(ctx context.Context) ([]report.Cycle, []report.Professor, error) {
	cycles, err := uc.repo.Cycles(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list cycles: %w", err)
	}
	professors, err := uc.repo.Professors(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list professors: %w", err)
	}
	return cycles, professors, nil
}
