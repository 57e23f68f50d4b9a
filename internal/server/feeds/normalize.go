package feeds

const (
	unknownCity    = "Unknown City"
	unknownCountry = "Unknown Country"

	// only records with a playable URL survive normalization
	statusOnline = "online"
)

// playableURL picks the first non-empty player URL, live stream first.
func playableURL(p *rawPlayer) string {
	if p == nil {
		return ""
	}
	for _, u := range []flexString{p.Live, p.Day, p.Month, p.Year} {
		if u != "" {
			return string(u)
		}
	}
	return ""
}

func formatLocation(l *rawLocation) string {
	city, country := unknownCity, unknownCountry
	if l != nil {
		if l.City != "" {
			city = string(l.City)
		}
		if l.Country != "" {
			country = string(l.Country)
		}
	}
	return city + ", " + country
}

func lastUpdated(v any) any {
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	return v
}

// normalize maps raw records to feeds, dropping those with no playable URL.
func normalize(raw []rawWebcam) []Feed {
	out := make([]Feed, 0, len(raw))
	for _, cam := range raw {
		u := playableURL(cam.Player)
		if u == "" {
			continue
		}

		out = append(out, Feed{
			ID:          string(cam.WebcamID),
			Name:        string(cam.Title),
			VideoURL:    u,
			Location:    formatLocation(cam.Location),
			Status:      statusOnline,
			Recording:   true,
			LastUpdated: lastUpdated(cam.LastUpdatedOn),
		})
	}
	return out
}
