package itinerary

import (
	"strings"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/api"
	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

const (
	minItineraryNameLen = 5
	minItinerarySteps   = 2
	// Floor for a believable group outing cost; the ceiling scales with the
	// request budget.
	minEstimatedCost = 50
)

// ValidateItinerary is the acceptance authority for synthesized itineraries,
// whichever tier produced them. Failing itineraries are discarded, not
// repaired.
func ValidateItinerary(it types.Itinerary, budget float64, locationLabel string) bool {
	name := strings.TrimSpace(it.Name)
	if len(name) < minItineraryNameLen || api.IsGenericName(name) {
		return false
	}
	// A specific plan names a place or area, not a lone word.
	if !strings.Contains(name, " ") {
		return false
	}

	if len(it.Steps) < minItinerarySteps {
		return false
	}
	for _, step := range it.Steps {
		stepName := strings.TrimSpace(step.VenueName)
		if stepName == "" || api.IsGenericName(stepName) {
			return false
		}
		if strings.EqualFold(stepName, strings.TrimSpace(locationLabel)) {
			return false
		}
	}

	if it.EstimatedCost < minEstimatedCost || it.EstimatedCost > 2*budget {
		return false
	}
	return true
}
