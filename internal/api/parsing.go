package api

import (
	"strings"

	"github.com/Abhishek-Jose7/hangout-sub000/internal/types"
)

// genericPlaceNames are placeholder words that disqualify a venue name or an
// itinerary step. Matching is case-insensitive on the trimmed string.
var genericPlaceNames = map[string]bool{
	"restaurant": true,
	"cafe":       true,
	"mall":       true,
	"park":       true,
	"beach":      true,
	"cinema":     true,
	"bar":        true,
	"shop":       true,
	"store":      true,
	"hotel":      true,
	"place":      true,
	"venue":      true,
}

// IsGenericName reports whether s is a bare category word rather than a
// specific place name.
func IsGenericName(s string) bool {
	return genericPlaceNames[strings.ToLower(strings.TrimSpace(s))]
}

// DedupeByName drops venues whose exact name has already been seen,
// preserving first-seen order. Near-duplicates under slightly different
// names are not merged.
func DedupeByName(venues []types.Venue) []types.Venue {
	seen := make(map[string]bool, len(venues))
	out := make([]types.Venue, 0, len(venues))
	for _, v := range venues {
		if seen[v.Name] {
			continue
		}
		seen[v.Name] = true
		out = append(out, v)
	}
	return out
}

// CleanJSONResponse strips markdown code-fence markers and surrounding prose
// from a generative-text response, returning the first balanced JSON object
// or array it contains. The input is untrusted text; when no JSON structure
// is found the trimmed input is returned as-is and the caller's parse will
// fail normally.
func CleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	// Remove markdown code block markers
	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	if strings.HasSuffix(response, "```") {
		response = strings.TrimSuffix(response, "```")
	}
	response = strings.TrimSpace(response)

	objStart := strings.IndexByte(response, '{')
	arrStart := strings.IndexByte(response, '[')

	start := objStart
	if start == -1 || (arrStart != -1 && arrStart < start) {
		start = arrStart
	}
	if start == -1 {
		return response
	}

	if extracted := balancedFrom(response, start); extracted != "" {
		return extracted
	}
	return response
}

// balancedFrom returns the balanced JSON value starting at index start, or
// "" when the text ends before the brackets close. String literals and
// escapes are honoured so braces inside quoted values do not miscount.
func balancedFrom(s string, start int) string {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				depth++
			}
		case '}', ']':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}
