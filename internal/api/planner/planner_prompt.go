package planner

import (
	"fmt"
	"strings"
)

func getAIOnlySuggestionsPrompt(pointLabel string, moodTags []string, budget float64, groupSize int, isRomantic bool) string {
	occasion := "a casual group hangout"
	if isRomantic {
		occasion = "a romantic outing"
	}
	return fmt.Sprintf(`
        Suggest 2-3 meetup itineraries around %s for %d people planning %s.
        Group mood tags: [%s]. Total group budget: %.0f.
        Use real, well-known venues in or near that area.
        Return the response STRICTLY as a JSON array with:
        [
            {
            "name": "A specific catchy name that mentions the area or a venue",
            "description": "A 2-3 sentence narrative of the day",
            "steps": [
                {
                "venue_name": "Name of a real venue, never a generic word like 'restaurant'",
                "activity_hint": "What the group does there, one short phrase"
                }
            ],
            "estimated_cost": <number, realistic total cost for the whole group, at most %.0f>
            }
        ]
        Each itinerary needs at least 2 steps.
    `, pointLabel, groupSize, occasion, strings.Join(moodTags, ", "), budget, 2*budget)
}
