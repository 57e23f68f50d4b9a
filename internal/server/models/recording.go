package models

import "time"

type RecordingType string

const (
	RecordingMotion    RecordingType = "motion"
	RecordingScheduled RecordingType = "scheduled"
	RecordingManual    RecordingType = "manual"
)

type Recording struct {
	ID        string         `json:"id"`
	CameraID  string         `json:"cameraId"`
	Camera    *CameraSummary `json:"camera,omitempty"`
	StartTime time.Time      `json:"startTime"`
	EndTime   time.Time      `json:"endTime"`
	// Duration is in seconds.
	Duration int64         `json:"duration"`
	FileURL  string        `json:"fileUrl"`
	Type     RecordingType `json:"type"`
	// Size is in bytes.
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DownloadLink is a temporary URL for fetching a recording file. ExpiresAt is
// nil when the stored URL is already public.
type DownloadLink struct {
	URL       string     `json:"url"`
	ExpiresAt *time.Time `json:"expiresAt"`
}
