package types

// PlanTier identifies which rung of the fallback ladder produced a plan.
type PlanTier string

const (
	TierRealVenues PlanTier = "real_venues"
	TierAIOnly     PlanTier = "ai_only"
	TierStatic     PlanTier = "static"
)

// ItineraryStep is one ordered stop in an itinerary.
type ItineraryStep struct {
	VenueName    string `json:"venue_name"`
	ActivityHint string `json:"activity_hint,omitempty"`
}

// Itinerary is a themed, costed plan for the group. Created fresh per
// planning request and never mutated afterwards. SourceVenues is empty when
// the itinerary came from a text-only fallback tier.
type Itinerary struct {
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Steps         []ItineraryStep `json:"steps"`
	EstimatedCost float64         `json:"estimated_cost"`
	SourceVenues  []Venue         `json:"source_venues,omitempty"`
}

// PlanResult is what the planner hands back to its caller: the itineraries
// plus which tier produced them and the meeting point they anchor on.
type PlanResult struct {
	MeetingPoint MeetingPoint `json:"meeting_point"`
	Tier         PlanTier     `json:"tier"`
	Itineraries  []Itinerary  `json:"itineraries"`
}
