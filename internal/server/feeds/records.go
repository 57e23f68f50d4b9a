package feeds

import (
	"bytes"

	"github.com/goccy/go-json"
)

// flexString accepts any JSON value. Numbers and booleans keep their literal
// text; null, objects and arrays become "".
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		*s = ""
		return nil
	}

	switch b[0] {
	case '"':
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
	case '{', '[', 'n':
		*s = ""
	default:
		*s = flexString(b)
	}
	return nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

type rawLocation struct {
	City    flexString `json:"city"`
	Country flexString `json:"country"`
}

// UnmarshalJSON treats a non-object location as absent.
func (l *rawLocation) UnmarshalJSON(b []byte) error {
	*l = rawLocation{}
	if !isObject(b) {
		return nil
	}
	type plain rawLocation
	return json.Unmarshal(b, (*plain)(l))
}

type rawPlayer struct {
	Live  flexString `json:"live"`
	Day   flexString `json:"day"`
	Month flexString `json:"month"`
	Year  flexString `json:"year"`
}

// UnmarshalJSON treats a non-object player as absent.
func (p *rawPlayer) UnmarshalJSON(b []byte) error {
	*p = rawPlayer{}
	if !isObject(b) {
		return nil
	}
	type plain rawPlayer
	return json.Unmarshal(b, (*plain)(p))
}

type rawWebcam struct {
	WebcamID      flexString   `json:"webcamId"`
	Title         flexString   `json:"title"`
	LastUpdatedOn any          `json:"lastUpdatedOn"`
	Location      *rawLocation `json:"location"`
	Player        *rawPlayer   `json:"player"`
}

// decodeWebcams decodes each record on its own and skips those that are not
// JSON objects.
func decodeWebcams(raw []json.RawMessage) (cams []rawWebcam, skipped int) {
	cams = make([]rawWebcam, 0, len(raw))
	for _, r := range raw {
		if !isObject(r) {
			skipped++
			continue
		}
		var cam rawWebcam
		if err := json.Unmarshal(r, &cam); err != nil {
			skipped++
			continue
		}
		cams = append(cams, cam)
	}
	return cams, skipped
}
