package users

import (
	"context"

	"evalportal/internal/core/domain/user"
	userUsecase "evalportal/internal/core/usecase/user"
)

type Manager interface {
	ListUsers(ctx context.Context, filter user.Filter, rawPage string) (*userUsecase.ListResult, error)
	GetUser(ctx context.Context, id int64) (*user.User, error)
	ChangeRole(ctx context.Context, id int64, rawRole string) (*user.User, error)
	ResetManualRole(ctx context.Context, id int64) (*user.User, bool, error)
	EditUser(ctx context.Context, id int64, in userUsecase.EditInput) (*user.User, error)
	ExportUsers(ctx context.Context) ([]*user.User, error)
}

// Recorder receives the form and export counters.
type Recorder interface {
	RecordValidationFailure(ctx context.Context, form, field string)
	RecordExport(ctx context.Context, kind string)
}
