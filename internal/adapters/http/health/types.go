package health

import "time"

type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
	StatusWarn Status = "warn"
)

const defaultComponentType = "dependency"

type LivenessResponse struct {
	Status    Status    `json:"status"`
	ServiceId string    `json:"serviceId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version,omitempty"`
}

// ReadinessResponse follows the draft-inadarei-api-health-check shape.
type ReadinessResponse struct {
	Status    Status                   `json:"status"`
	Version   string                   `json:"version"`
	ReleaseId string                   `json:"releaseId,omitempty"`
	ServiceId string                   `json:"serviceId,omitempty"`
	Notes     []string                 `json:"notes,omitempty"`
	Output    string                   `json:"output,omitempty"`
	Checks    map[string][]CheckDetail `json:"checks,omitempty"`
}

type CheckDetail struct {
	ComponentId   string    `json:"componentId,omitempty"`
	ComponentType string    `json:"componentType,omitempty"`
	Status        Status    `json:"status"`
	ObservedValue float64   `json:"observedValue,omitempty"`
	ObservedUnit  string    `json:"observedUnit,omitempty"`
	Time          time.Time `json:"time"`
	Output        string    `json:"output,omitempty"`
}
