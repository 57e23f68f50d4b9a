package models

import "time"

type AlertType string

const (
	AlertMotion    AlertType = "motion"
	AlertOffline   AlertType = "offline"
	AlertTampering AlertType = "tampering"
	AlertLowLight  AlertType = "low_light"
)

type AlertSeverity string

const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is an event raised against a camera. Resolved is true exactly when
// ResolvedAt and ResolvedBy are both set.
type Alert struct {
	ID         string         `json:"id"`
	Type       AlertType      `json:"type"`
	CameraID   string         `json:"cameraId"`
	Camera     *CameraSummary `json:"camera,omitempty"`
	Severity   AlertSeverity  `json:"severity"`
	Message    string         `json:"message"`
	Resolved   bool           `json:"resolved"`
	ResolvedAt *time.Time     `json:"resolvedAt"`
	ResolvedBy *string        `json:"resolvedBy"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}
