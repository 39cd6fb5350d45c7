package ports

import (
	"context"

	"evalportal/internal/core/domain/report"
)

// EvaluationRepository returns evaluations that have at least one respondent,
// ordered by id.
type EvaluationRepository interface {
	Find(ctx context.Context, filter report.Filter) ([]report.Evaluation, error)
	Cycles(ctx context.Context) ([]report.Cycle, error)
	Professors(ctx context.Context) ([]report.Professor, error)
}
