package memory

import (
	"cmp"
	"context"
	"errors"
	"slices"

	"evalportal/internal/core/domain/report"
	memoryPlatform "evalportal/internal/platform/repository/memory"
)

type EvaluationRepository struct {
	evaluations *memoryPlatform.Repository[int64, *report.Evaluation]
	cycles      *memoryPlatform.Repository[int64, report.Cycle]
	professors  *memoryPlatform.Repository[int64, report.Professor]
}

func NewEvaluationRepository() *EvaluationRepository {
	return &EvaluationRepository{
		evaluations: memoryPlatform.New[int64, *report.Evaluation](),
		cycles:      memoryPlatform.New[int64, report.Cycle](),
		professors:  memoryPlatform.New[int64, report.Professor](),
	}
}

// Save stores the evaluation along with its cycle and professor.
func (r *EvaluationRepository) Save(ctx context.Context, ev report.Evaluation) error {
	if err := saveOnce(ctx, r.cycles, ev.Cycle); err != nil {
		return err
	}
	if err := saveOnce(ctx, r.professors, ev.Professor); err != nil {
		return err
	}
	return r.evaluations.Save(ctx, &ev)
}

func saveOnce[T memoryPlatform.Entity[int64]](ctx context.Context, repo *memoryPlatform.Repository[int64, T], v T) error {
	err := repo.Save(ctx, v)
	if errors.Is(err, memoryPlatform.ErrAlreadyExists) {
		return nil
	}
	return err
}

func (r *EvaluationRepository) Find(ctx context.Context, filter report.Filter) ([]report.Evaluation, error) {
	found, err := r.evaluations.Find(ctx, func(ev *report.Evaluation) bool {
		return ev.Respondents > 0 && filter.Matches(ev)
	})
	if err != nil {
		return nil, err
	}

	out := make([]report.Evaluation, len(found))
	for i, ev := range found {
		out[i] = *ev
	}
	return out, nil
}

// Cycles lists the newest cycle first.
func (r *EvaluationRepository) Cycles(ctx context.Context) ([]report.Cycle, error) {
	cycles, err := r.cycles.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.Reverse(cycles)
	return cycles, nil
}

func (r *EvaluationRepository) Professors(ctx context.Context) ([]report.Professor, error) {
	professors, err := r.professors.List(ctx)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(professors, func(a, b report.Professor) int {
		return cmp.Compare(a.Name, b.Name)
	})
	return professors, nil
}
