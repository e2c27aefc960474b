package types

// Coordinates is a resolved geographic point.
type Coordinates struct {
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

// Location is a member's free-text home address plus its resolution, if any.
// Resolved is nil until the geocoder has answered; a nil Resolved after
// resolution means the address could not be found.
type Location struct {
	Address  string       `json:"address"`
	Resolved *Coordinates `json:"resolved,omitempty"`
}

// MemberPreferences is the per-member input to the planning pipeline.
// The pipeline only reads it.
type MemberPreferences struct {
	Location Location `json:"location"`
	Budget   float64  `json:"budget"`
	MoodTags []string `json:"mood_tags"`
}

// MeetingPoint is the anchor for venue discovery, derived once per planning
// request. Coordinates is nil when no member location resolved and the
// label falls back to the first member's raw address text.
type MeetingPoint struct {
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	Label       string       `json:"label"`
}

// HasCoordinates reports whether the point carries a usable lat/lng.
func (p MeetingPoint) HasCoordinates() bool {
	return p.Coordinates != nil
}
