package models

import "time"

type CameraStatus string

const (
	CameraOnline      CameraStatus = "online"
	CameraOffline     CameraStatus = "offline"
	CameraMaintenance CameraStatus = "maintenance"
)

type CameraType string

const (
	CameraIndoor  CameraType = "indoor"
	CameraOutdoor CameraType = "outdoor"
)

// DefaultResolution is applied when a camera is registered without one.
const DefaultResolution = "1080p"

type Camera struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Location   string       `json:"location"`
	StreamURL  string       `json:"streamUrl"`
	Status     CameraStatus `json:"status"`
	Type       CameraType   `json:"type"`
	Resolution string       `json:"resolution"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

// CameraSummary is the subset of a camera embedded in recordings and alerts.
type CameraSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Summary returns the embeddable view of c.
func (c *Camera) Summary() *CameraSummary {
	return &CameraSummary{ID: c.ID, Name: c.Name, Location: c.Location}
}
