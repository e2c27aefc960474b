package discovery

import (
	"fmt"
)

func getVenueExtractionPrompt(pageText, tag, pointLabel string) string {
	return fmt.Sprintf(`
        The following text was scraped from a web page while searching for "%s" venues near %s.
        Extract up to 5 real venues from it.
        Return the response STRICTLY as a JSON array with the following shape and nothing else:
        [
            {
            "name": "Exact name of the venue (never a generic word like 'restaurant' or 'mall')",
            "address": "Street address or area of the venue, best effort",
            "rating": <float between 0 and 5, or null if unknown>,
            "reviews": <integer review count, or null if unknown>,
            "description": "One sentence on what the venue offers",
            "type": "Primary category (e.g., Restaurant, Cafe, Museum, Spa, Arcade, Mall, Bar)"
            }
        ]
        Only include venues that plausibly exist near %s. If the text contains no venues, return [].

        Scraped text:
        %s
    `, tag, pointLabel, pointLabel, pageText)
}
