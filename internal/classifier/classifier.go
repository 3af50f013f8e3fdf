// Package classifier implements the keyword-heuristic categorizer that
// suggests a category and priority for a complaint from its free text.
// It is pure and deterministic: no I/O, no state, and it never fails —
// text matching nothing yields the fallback category with low confidence.
package classifier

import (
	"math"
	"strings"

	"github.com/subalakshmi-817/CMS-pro/internal/models"
)

// Suggestion is the classifier output for one (title, description) pair.
// Confidence is in [0, 1].
type Suggestion struct {
	Category   models.Category `json:"category"`
	Priority   models.Priority `json:"priority"`
	Confidence float64         `json:"confidence"`
}

// categoryKeywords maps each category (except the fallback) to its fixed
// keyword list. Order matters: ties on match count keep the category seen
// first, so the slice follows models.Categories enumeration order.
var categoryKeywords = []struct {
	category models.Category
	keywords []string
}{
	{models.CategoryWifi, []string{"wifi", "internet", "network", "connection", "connectivity", "online", "bandwidth", "router"}},
	{models.CategoryLab, []string{"lab", "system", "computer", "pc", "desktop", "monitor", "keyboard", "mouse", "software"}},
	{models.CategoryHostel, []string{"hostel", "room", "fan", "light", "bed", "mattress", "washroom", "bathroom", "mess"}},
	{models.CategoryElectrical, []string{"electric", "power", "electricity", "voltage", "switch", "socket", "wiring", "blackout"}},
	{models.CategoryInfrastructure, []string{"building", "wall", "ceiling", "floor", "door", "window", "paint", "construction"}},
	{models.CategoryLibrary, []string{"library", "book", "reading", "seating", "ac", "silence"}},
}

// highPriorityKeywords force priority high regardless of category matches.
var highPriorityKeywords = []string{
	"urgent", "emergency", "broken", "damage", "safety", "danger",
	"fire", "leak", "complete", "full", "outage", "critical",
}

// mediumPriorityKeywords raise priority to medium unless a high keyword
// already matched.
var mediumPriorityKeywords = []string{
	"issue", "problem", "not working", "malfunction", "need", "repair", "fix",
}

// Classify scores the concatenated, lowercased title and description
// against the keyword tables and returns a category, priority, and
// confidence suggestion.
//
// Category: the category whose keyword list has the strictly highest
// number of distinct substring matches wins; ties keep the first category
// that reached the count. Zero matches fall back to CategoryOthers.
//
// Priority precedence: any high-urgency keyword -> high; else any
// medium-urgency keyword, or a winning match count of two or more ->
// medium; else low.
//
// Confidence: 0.4 when nothing matched, otherwise
// min(0.95, 0.6 + 0.1 * matches).
func Classify(title, description string) Suggestion {
	text := strings.ToLower(title + " " + description)

	category := models.CategoryOthers
	maxMatches := 0
	for _, entry := range categoryKeywords {
		matches := 0
		for _, keyword := range entry.keywords {
			if strings.Contains(text, keyword) {
				matches++
			}
		}
		if matches > maxMatches {
			maxMatches = matches
			category = entry.category
		}
	}

	priority := models.PriorityLow
	if containsAny(text, highPriorityKeywords) {
		priority = models.PriorityHigh
	} else if containsAny(text, mediumPriorityKeywords) || maxMatches >= 2 {
		priority = models.PriorityMedium
	}

	confidence := 0.4
	if maxMatches > 0 {
		confidence = math.Min(0.95, 0.6+0.1*float64(maxMatches))
	}

	return Suggestion{
		Category:   category,
		Priority:   priority,
		Confidence: confidence,
	}
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
