package itinerary

import (
	"fmt"
	"strings"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

func getItinerarySynthesisPrompt(themeName string, venues []types.Venue, moodTags []string, budget float64, pointLabel string, groupSize int, isRomantic bool) string {
	var venueLines []string
	for _, v := range venues {
		venueLines = append(venueLines, fmt.Sprintf(`- %s (%s, rating %.1f, %d reviews): %s`,
			v.Name, strings.Join(v.CategoryTypes, "/"), v.Rating, v.ReviewCount, v.Description))
	}
	occasion := "a casual group hangout"
	if isRomantic {
		occasion = "a romantic outing"
	}
	return fmt.Sprintf(`
        Plan a "%s" themed day out around %s for %d people on %s.
        Group mood tags: [%s]. Total group budget: %.0f.
        Use ONLY these venues, in a sensible visiting order:
        %s
        Return the response STRICTLY as a JSON object with:
        {
        "name": "A specific catchy name that mentions %s or one of the venues",
        "description": "A 2-3 sentence narrative of the day",
        "steps": [
            {
            "venue_name": "Name of the venue for this stop, exactly as given above",
            "activity_hint": "What the group does there, one short phrase"
            }
        ],
        "estimated_cost": <number, realistic total cost for the whole group, at most %.0f>
        }
        Include at least 2 steps. Never use generic placeholders like "restaurant" or "mall" as a venue name.
    `, themeName, pointLabel, groupSize, occasion, strings.Join(moodTags, ", "), budget,
		strings.Join(venueLines, "\n        "), pointLabel, 2*budget)
}
