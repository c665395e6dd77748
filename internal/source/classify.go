// Package source implements the candidate source adapters that fetch gift
// listings from external retail providers, plus the shared heuristics they
// use to classify and tag what they find.
package source

import (
	"sort"
	"strings"
)

// categoryRule maps a category to the title keywords that select it.
type categoryRule struct {
	category string
	keywords []string
}

// categoryRules is checked in order; the first matching category wins.
var categoryRules = []categoryRule{
	{category: "driving", keywords: []string{"driving", "car", "racing", "track day", "supercar"}},
	{category: "food_drink", keywords: []string{"dining", "restaurant", "food", "drink", "tasting"}},
	{category: "spa", keywords: []string{"spa", "massage", "facial", "beauty", "treatment"}},
	{category: "adventure", keywords: []string{"adventure", "outdoor", "flying", "skydiving"}},
	{category: "short_breaks", keywords: []string{"hotel", "stay", "break", "getaway", "night"}},
	{category: "entertainment", keywords: []string{"theatre", "show", "concert", "cinema"}},
	{category: "sports", keywords: []string{"football", "golf", "stadium", "match", "training"}},
	{category: "experiences", keywords: []string{"experience", "tour", "lesson", "class"}},
}

// luxuryPriceThreshold separates the two fallback categories for listings
// whose title matches nothing.
const luxuryPriceThreshold = 200.0

// tagRules add audience/theme tags on top of the category tag.
var tagRules = []categoryRule{
	{category: "romantic", keywords: []string{"couple", "romantic", "date", "two"}},
	{category: "family", keywords: []string{"family", "kids", "children"}},
	{category: "adventure", keywords: []string{"thrill", "adventure", "exciting"}},
	{category: "relaxation", keywords: []string{"spa", "massage", "relax", "pamper"}},
	{category: "food_lover", keywords: []string{"dining", "tasting", "gourmet"}},
	{category: "outdoor", keywords: []string{"outdoor", "nature", "garden"}},
	{category: "cultural", keywords: []string{"theatre", "museum", "art"}},
	{category: "learning", keywords: []string{"class", "lesson", "workshop"}},
}

// ClassifyTitle assigns a category based on the listing title, falling back
// on a price split when no keyword matches.
func ClassifyTitle(title string, price float64) string {
	titleLower := strings.ToLower(title)

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(titleLower, keyword) {
				return rule.category
			}
		}
	}

	if price >= luxuryPriceThreshold {
		return "luxury"
	}
	return "experiences"
}

// GenerateTags builds the tag set for a listing: the category itself plus
// every tag rule the title matches, sorted and deduplicated.
func GenerateTags(title, category string) []string {
	seen := map[string]struct{}{category: {}}
	titleLower := strings.ToLower(title)

	for _, rule := range tagRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(titleLower, keyword) {
				seen[rule.category] = struct{}{}
				break
			}
		}
	}

	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
