package types

// Venue is a real-world place candidate discovered near the meeting point.
type Venue struct {
	Name          string   `json:"name"`
	Address       string   `json:"address"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"review_count"`
	CategoryTypes []string `json:"category_types,omitempty"`
	SourceID      string   `json:"source_id,omitempty"`
	Description   string   `json:"description,omitempty"`
	SourceURL     string   `json:"source_url,omitempty"`
}

// VenueCategory is one of the fixed activity buckets.
type VenueCategory string

const (
	CategoryDining        VenueCategory = "dining"
	CategoryEntertainment VenueCategory = "entertainment"
	CategoryAttractions   VenueCategory = "attractions"
	CategoryShopping      VenueCategory = "shopping"
	CategoryNightlife     VenueCategory = "nightlife"
	CategoryWellness      VenueCategory = "wellness"
)

// AllCategories lists the buckets in classification priority order.
var AllCategories = []VenueCategory{
	CategoryDining,
	CategoryEntertainment,
	CategoryAttractions,
	CategoryShopping,
	CategoryNightlife,
	CategoryWellness,
}

// CategoryBucket maps each category to the venues classified under it.
// Every discovered venue lands in exactly one bucket; unmatched venues
// default to attractions.
type CategoryBucket map[VenueCategory][]Venue

// Total returns the number of venues across all buckets.
func (b CategoryBucket) Total() int {
	n := 0
	for _, venues := range b {
		n += len(venues)
	}
	return n
}
