package itinerary

import (
	"strings"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

const (
	minVenuesPerTheme = 3
	maxVenuesPerTheme = 4
)

// theme describes one candidate itinerary flavour: which buckets feed it and
// which mood words make it worth attempting.
type theme struct {
	Name          string
	MoodTriggers  []string
	SourceBuckets []types.VenueCategory
	// AlwaysAttempt bypasses the mood-trigger check; the Balanced theme is
	// the guaranteed baseline.
	AlwaysAttempt bool
	// OnePerBucket picks a single venue from each source bucket instead of
	// filling greedily.
	OnePerBucket bool
}

// themes in generation order. Accepted itineraries keep this order.
var themes = []theme{
	{
		Name:          "Food & Culture",
		MoodTriggers:  []string{"food", "cafe", "coffee", "culture", "museum", "history", "art", "foodie"},
		SourceBuckets: []types.VenueCategory{types.CategoryDining, types.CategoryAttractions},
	},
	{
		Name:          "Entertainment",
		MoodTriggers:  []string{"movie", "game", "gaming", "fun", "entertainment", "music", "adventure", "party"},
		SourceBuckets: []types.VenueCategory{types.CategoryEntertainment, types.CategoryAttractions, types.CategoryDining},
	},
	{
		Name:          "Relaxation",
		MoodTriggers:  []string{"relax", "chill", "spa", "wellness", "nature", "quiet", "calm"},
		SourceBuckets: []types.VenueCategory{types.CategoryWellness, types.CategoryAttractions, types.CategoryDining},
	},
	{
		Name:          "Balanced",
		AlwaysAttempt: true,
		OnePerBucket:  true,
		SourceBuckets: []types.VenueCategory{types.CategoryDining, types.CategoryAttractions, types.CategoryEntertainment, types.CategoryShopping},
	},
}

// matchesMood reports whether any request tag trips one of the theme's
// trigger words. Matching is a case-insensitive substring test in both
// directions so "Cafe Hopping" trips "cafe".
func (t theme) matchesMood(moodTags []string) bool {
	if t.AlwaysAttempt {
		return true
	}
	for _, tag := range moodTags {
		lowered := strings.ToLower(tag)
		for _, trigger := range t.MoodTriggers {
			if strings.Contains(lowered, trigger) || strings.Contains(trigger, lowered) {
				return true
			}
		}
	}
	return false
}

// selectVenues builds the theme's candidate set from the buckets. Returns
// nil when the set ends up below the minimum.
func (t theme) selectVenues(buckets types.CategoryBucket) []types.Venue {
	var selected []types.Venue
	if t.OnePerBucket {
		for _, category := range t.SourceBuckets {
			if venues := buckets[category]; len(venues) > 0 {
				selected = append(selected, venues[0])
			}
		}
	} else {
		for _, category := range t.SourceBuckets {
			for _, venue := range buckets[category] {
				if len(selected) == maxVenuesPerTheme {
					break
				}
				selected = append(selected, venue)
			}
		}
	}
	if len(selected) < minVenuesPerTheme {
		return nil
	}
	if len(selected) > maxVenuesPerTheme {
		selected = selected[:maxVenuesPerTheme]
	}
	return selected
}
