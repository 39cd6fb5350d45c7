package health

import (
	"net/http"
	"time"

	"evalportal/internal/adapters/http/response"
	"evalportal/internal/version"
)

type LivenessHandler struct {
	build version.BuildInfo
}

func NewLivenessHandler(build version.BuildInfo) *LivenessHandler {
	return &LivenessHandler{
		build: build,
	}
}

func (h *LivenessHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	select {
	case <-ctx.Done():
		response.RespondError(w, http.StatusRequestTimeout, ctx.Err())
		return
	default:
		response.RespondJSON(w, http.StatusOK, LivenessResponse{
			Status:    StatusPass,
			ServiceId: h.build.Service,
			Timestamp: time.Now(),
			Version:   h.build.Version,
		})
	}
}
