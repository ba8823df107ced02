// Package category infers an expense category from a free-text description
// by keyword lookup.
package category

import "strings"

// Other is the fallback label when no keyword matches.
const Other = "Other"

type rule struct {
	label    string
	keywords []string
}

// Declaration order is the tie-break: when a description matches keywords
// from several categories, the first declared wins.
var rules = []rule{
	{"Groceries", []string{"groceries", "food", "supermarket", "market", "store", "shop", "household", "cleaning"}},
	{"Dining", []string{"dinner", "lunch", "breakfast", "restaurant", "cafe", "food", "eat", "meal", "fast food", "delivery"}},
	{"Attractions", []string{"attraction", "museum", "theme park", "tourist", "entertainment", "park", "waterfall", "boat", "tour", "sightseeing", "ticket", "entrance"}},
	{"Transportation", []string{"taxi", "uber", "bolt", "grab", "bus", "train", "transport", "gas", "fuel", "car rental", "scooter rental", "rental", "metro", "subway"}},
	{"Education", []string{"course", "book", "learning", "education", "study", "class", "school", "university", "college", "training"}},
	{"Fitness", []string{"gym", "fitness", "sport", "exercise", "workout", "training", "yoga", "pilates", "swimming", "running"}},
	{"Massage", []string{"massage", "spa", "wellness", "therapy", "relaxation"}},
	{"Shakes", []string{"shake", "smoothie", "juice", "fruit", "drink", "beverage", "fresh", "blend"}},
	{"Orders", []string{"order", "lazada", "decathlon", "amazon", "online", "shopping", "delivery", "purchase", "buy"}},
}

// Classify maps a description to a category label. It is total: descriptions
// matching no keyword fall back to Other.
func Classify(description string) string {
	lower := strings.ToLower(description)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.label
			}
		}
	}
	return Other
}

// Labels returns the closed label set in declaration order, fallback last.
func Labels() []string {
	out := make([]string, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.label)
	}
	return append(out, Other)
}
