package extract

import (
	"sort"

	"github.com/giftscout/giftscout/internal/lexicon"
)

// MapCategories expands interests into the deduplicated union of their
// retrieval categories. Pure and total: unknown interests are silently
// ignored, and the same input always yields the same sorted output.
func MapCategories(interests []string) []string {
	seen := make(map[string]struct{})
	for _, interest := range interests {
		for _, category := range lexicon.CategoryMapping[interest] {
			seen[category] = struct{}{}
		}
	}

	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
