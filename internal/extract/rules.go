// Package extract turns free-text gift descriptions into structured
// criteria. The rule-based strategy here is always available and never
// fails; the generative strategy in internal/llm falls back to it.
package extract

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/giftscout/giftscout/internal/lexicon"
	"github.com/giftscout/giftscout/internal/model"
)

var agePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2})\s*(?:year(?:s)?\s*old|yo)\b`),
	regexp.MustCompile(`\bage(?:\s+is)?\s*:?\s*(\d{1,2})\b`),
}

// pricePatterns are tried in priority order; the first one that matches
// anywhere in the text wins.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:£|\$|eur)\s*(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:\.\d{2})?)\s*(?:pounds|dollars|euros)`),
	regexp.MustCompile(`budget(?:\s+is)?\s*:?\s*(?:£|\$|eur)?\s*(\d+(?:\.\d{2})?)`),
	regexp.MustCompile(`spend(?:\s+up\s+to)?\s*(?:£|\$|eur)?\s*(\d+(?:\.\d{2})?)`),
}

// hobbyPatterns capture free-form interests ("likes to paint", "enjoys
// hiking") that the keyword tables do not know about. The captured word is
// added verbatim alongside any lexicon categories.
var hobbyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\blikes? to (\w+)`),
	regexp.MustCompile(`\benjoys? (\w+ing)\b`),
	regexp.MustCompile(`\binto (\w+ing)\b`),
	regexp.MustCompile(`\bfan of (\w+)`),
}

// wordRegexps caches one whole-word regexp per lexicon keyword and gender
// term so matching never compiles inside a request.
var wordRegexps = buildWordRegexps()

func buildWordRegexps() map[string]*regexp.Regexp {
	res := make(map[string]*regexp.Regexp)
	add := func(words []string) {
		for _, w := range words {
			if _, ok := res[w]; !ok {
				res[w] = regexp.MustCompile(`\b` + regexp.QuoteMeta(w) + `\b`)
			}
		}
	}
	for _, entry := range lexicon.Interests {
		add(entry.Keywords)
	}
	for _, entry := range lexicon.Occasions {
		add(entry.Keywords)
	}
	for _, entry := range lexicon.Relationships {
		add(entry.Keywords)
	}
	add(lexicon.MaleTerms)
	add(lexicon.FemaleTerms)
	return res
}

func containsWord(text, word string) bool {
	re, ok := wordRegexps[word]
	if !ok {
		re = regexp.MustCompile(`\b` + regexp.QuoteMeta(word) + `\b`)
	}
	return re.MatchString(text)
}

// RuleExtractor is the lexicon-based extraction strategy. It is the default
// strategy and the fallback for the generative one.
type RuleExtractor struct{}

// NewRuleExtractor creates the rule-based extractor.
func NewRuleExtractor() *RuleExtractor {
	return &RuleExtractor{}
}

// Extract applies the per-field extraction rules against the normalized
// description. Each rule is independent; a rule that finds nothing leaves
// its field absent. Empty input yields an empty Criteria.
func (e *RuleExtractor) Extract(_ context.Context, description string) model.Criteria {
	criteria := model.Criteria{
		Interests:  []string{},
		Categories: []string{},
	}
	if strings.TrimSpace(description) == "" {
		return criteria
	}

	text := strings.ToLower(description)

	criteria.Age = extractAge(text)
	criteria.Gender = extractGender(text)
	criteria.MaxPrice = extractPrice(text)
	criteria.Interests = extractInterests(text)
	criteria.Occasion = extractOccasion(text)
	criteria.Relationship = extractRelationship(text)
	criteria.Categories = MapCategories(criteria.Interests)

	return criteria
}

func extractAge(text string) *int {
	for _, pattern := range agePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			age, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			return &age
		}
	}
	return nil
}

// extractGender counts whole-word occurrences of each term set and returns
// the gender with the higher count. Zero occurrences of both means absent.
// Nonzero ties resolve to male, the first-counted set.
func extractGender(text string) string {
	count := func(terms []string) int {
		total := 0
		for _, term := range terms {
			total += len(wordRegexps[term].FindAllString(text, -1))
		}
		return total
	}

	maleCount := count(lexicon.MaleTerms)
	femaleCount := count(lexicon.FemaleTerms)

	if maleCount == 0 && femaleCount == 0 {
		return ""
	}
	if femaleCount > maleCount {
		return model.GenderFemale
	}
	return model.GenderMale
}

func extractPrice(text string) *float64 {
	for _, pattern := range pricePatterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			price, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			return &price
		}
	}
	return nil
}

func extractInterests(text string) []string {
	found := make(map[string]struct{})

	for _, entry := range lexicon.Interests {
		for _, keyword := range entry.Keywords {
			if containsWord(text, keyword) {
				found[entry.Category] = struct{}{}
				break
			}
		}
	}

	for _, pattern := range hobbyPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			found[m[1]] = struct{}{}
		}
	}

	interests := make([]string, 0, len(found))
	for interest := range found {
		interests = append(interests, interest)
	}
	sort.Strings(interests)
	return interests
}

func extractOccasion(text string) string {
	return firstMatch(lexicon.Occasions, text)
}

func extractRelationship(text string) string {
	return firstMatch(lexicon.Relationships, text)
}

// firstMatch returns the category of the first entry, in table order, with
// a whole-word keyword match. Single-valued by contract: later matching
// entries are ignored.
func firstMatch(entries []lexicon.Entry, text string) string {
	for _, entry := range entries {
		for _, keyword := range entry.Keywords {
			if containsWord(text, keyword) {
				return entry.Category
			}
		}
	}
	return ""
}
