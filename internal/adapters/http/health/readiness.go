package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"evalportal/internal/adapters/http/response"
	"evalportal/internal/platform/health"
	"evalportal/internal/platform/logger"
	"evalportal/internal/version"
)

const readinessTimeout = 5 * time.Second

type ReadinessHandler struct {
	build         version.BuildInfo
	healthManager health.ManagerInterface
}

func NewReadinessHandler(build version.BuildInfo, healthManager health.ManagerInterface) *ReadinessHandler {
	return &ReadinessHandler{
		build:         build,
		healthManager: healthManager,
	}
}

func (h *ReadinessHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	log := logger.FromContext(ctx)
	healthResults := h.healthManager.CheckAll(ctx)
	overallStatus := StatusPass
	checks := make(map[string][]CheckDetail, len(healthResults))
	var notes []string

	for name, result := range healthResults {
		status := toStatus(result.Status)
		switch {
		case status == StatusFail:
			overallStatus = StatusFail
			notes = append(notes, "Dependency "+name+" is unavailable")
		case status == StatusWarn && overallStatus == StatusPass:
			overallStatus = StatusWarn
		}

		checkDetail := CheckDetail{
			ComponentId:   name,
			ComponentType: result.ComponentType,
			Status:        status,
			Time:          time.Now(),
			Output:        result.Message,
		}
		if checkDetail.ComponentType == "" {
			checkDetail.ComponentType = defaultComponentType
		}
		if result.Latency > 0 {
			checkDetail.ObservedValue = float64(result.Latency.Microseconds()) / 1000
			checkDetail.ObservedUnit = "ms"
		}
		if result.Error != "" {
			checkDetail.Output = result.Error
		}

		checks[name+":responseTime"] = []CheckDetail{checkDetail}
	}
	// map iteration order is random
	sort.Strings(notes)

	readinessResponse := ReadinessResponse{
		Status:    overallStatus,
		Version:   h.build.Version,
		ReleaseId: h.build.GitCommit,
		ServiceId: h.build.Service,
		Checks:    checks,
		Notes:     notes,
	}

	statusCode := http.StatusOK
	if overallStatus == StatusFail {
		statusCode = http.StatusServiceUnavailable
		log.Warn("Readiness check failed",
			logger.String("status", string(overallStatus)),
			logger.Strings("notes", notes),
		)
	}

	response.RespondJSON(w, statusCode, readinessResponse)
}

func toStatus(s health.Status) Status {
	switch s {
	case health.StatusHealthy:
		return StatusPass
	case health.StatusUnhealthy:
		return StatusFail
	default:
		return StatusWarn
	}
}
