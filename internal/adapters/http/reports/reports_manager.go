package reports

import (
	"context"

	"evalportal/internal/core/domain/report"
	reportUsecase "evalportal/internal/core/usecase/report"
)

type Manager interface {
	Report(ctx context.Context, q report.Query) (*reportUsecase.Page, error)
	Export(ctx context.Context, filter report.Filter) (*reportUsecase.Export, error)
}

type Recorder interface {
	RecordExport(ctx context.Context, kind string)
}
