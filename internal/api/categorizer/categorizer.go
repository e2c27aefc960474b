package categorizer

import (
	"strings"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// categoryKeywords drives classification. A venue is tested against each
// category in types.AllCategories order; the first category with a keyword
// hit wins.
var categoryKeywords = map[types.VenueCategory][]string{
	types.CategoryDining: {
		"restaurant", "cafe", "coffee", "food", "eatery", "diner", "bistro",
		"bakery", "pizzeria", "buffet", "cuisine", "brunch", "dining",
	},
	types.CategoryEntertainment: {
		"cinema", "movie", "theatre", "theater", "arcade", "bowling",
		"karaoke", "game", "gaming", "entertainment", "escape room", "concert",
	},
	types.CategoryAttractions: {
		"museum", "gallery", "monument", "landmark", "park", "garden",
		"temple", "fort", "palace", "zoo", "aquarium", "heritage", "viewpoint",
		"attraction", "history", "historical",
	},
	types.CategoryShopping: {
		"mall", "market", "bazaar", "shopping", "boutique", "outlet", "store",
	},
	types.CategoryNightlife: {
		"bar", "pub", "club", "lounge", "brewery", "nightlife", "cocktail",
	},
	types.CategoryWellness: {
		"spa", "yoga", "wellness", "massage", "salon", "meditation", "retreat",
	},
}

// Categorize buckets venues by activity type. Pure and deterministic: every
// venue lands in exactly one bucket, and a venue matching nothing defaults
// to attractions rather than being dropped.
func Categorize(venues []types.Venue) types.CategoryBucket {
	buckets := make(types.CategoryBucket, len(types.AllCategories))
	for _, category := range types.AllCategories {
		buckets[category] = []types.Venue{}
	}
	for _, venue := range venues {
		category := classify(venue)
		buckets[category] = append(buckets[category], venue)
	}
	return buckets
}

func classify(venue types.Venue) types.VenueCategory {
	haystack := strings.ToLower(strings.Join(venue.CategoryTypes, " ") + " " + venue.Description + " " + venue.Name)
	for _, category := range types.AllCategories {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(haystack, keyword) {
				return category
			}
		}
	}
	return types.CategoryAttractions
}
