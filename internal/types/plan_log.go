package types

import (
	"time"

	"github.com/google/uuid"
)

// PlanLog is the persisted record of one planning request: which tier
// answered, how many itineraries came back, and how long it took. Written
// best-effort; losing a row never fails the request.
type PlanLog struct {
	ID             uuid.UUID `json:"id"`
	MemberCount    int       `json:"member_count"`
	MoodTags       []string  `json:"mood_tags"`
	Tier           PlanTier  `json:"tier"`
	ItineraryCount int       `json:"itinerary_count"`
	LatencyMs      int       `json:"latency_ms"`
	ResponseText   string    `json:"response_text,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
