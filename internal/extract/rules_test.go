package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giftscout/giftscout/internal/model"
)

func TestExtractEmptyDescription(t *testing.T) {
	extractor := NewRuleExtractor()

	for _, text := range []string{"", "   ", "\n\t"} {
		criteria := extractor.Extract(context.Background(), text)
		assert.True(t, criteria.IsEmpty(), "expected empty criteria for %q", text)
		assert.NotNil(t, criteria.Interests)
		assert.NotNil(t, criteria.Categories)
	}
}

func TestExtractAge(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{name: "years old", text: "my friend is 25 years old", want: intPtr(25)},
		{name: "year old", text: "a 1 year old", want: intPtr(1)},
		{name: "yo suffix", text: "gift for a 30yo", want: intPtr(30)},
		{name: "age colon", text: "age: 7, loves dinosaurs", want: intPtr(7)},
		{name: "age is", text: "her age is 42", want: intPtr(42)},
		{name: "no age", text: "loves hiking and camping", want: nil},
		{name: "ordinal birthday is not an age", text: "his 30th birthday", want: nil},
	}

	extractor := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := extractor.Extract(context.Background(), tt.text)
			if tt.want == nil {
				assert.Nil(t, criteria.Age)
			} else {
				require.NotNil(t, criteria.Age)
				assert.Equal(t, *tt.want, *criteria.Age)
			}
		})
	}
}

func TestExtractGender(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "female majority",
			text: "she loves her garden and she reads every night",
			want: model.GenderFemale,
		},
		{
			name: "male majority",
			text: "he wants something for his workshop",
			want: model.GenderMale,
		},
		{
			name: "nonzero tie is stable",
			text: "he and she both like it",
			want: model.GenderMale,
		},
		{
			name: "no gendered terms",
			text: "a gift for someone who likes cooking",
			want: "",
		},
		{
			name: "relationship terms do not vote",
			text: "something for my brother who likes cooking",
			want: "",
		},
		{
			name: "substring inside a word does not match",
			text: "a shed for the garden",
			want: "",
		},
	}

	extractor := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := extractor.Extract(context.Background(), tt.text)
			assert.Equal(t, tt.want, criteria.Gender)
		})
	}
}

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *float64
	}{
		{name: "pound symbol", text: "budget £50 for this", want: floatPtr(50)},
		{name: "dollar symbol", text: "around $25.50 or so", want: floatPtr(25.50)},
		{name: "currency word", text: "no more than 40 pounds", want: floatPtr(40)},
		{name: "budget phrase", text: "our budget is 75", want: floatPtr(75)},
		{name: "spend up to", text: "happy to spend up to 120", want: floatPtr(120)},
		{name: "no price", text: "whatever makes her happy", want: nil},
	}

	extractor := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			criteria := extractor.Extract(context.Background(), tt.text)
			if tt.want == nil {
				assert.Nil(t, criteria.MaxPrice)
			} else {
				require.NotNil(t, criteria.MaxPrice)
				assert.InDelta(t, *tt.want, *criteria.MaxPrice, 0.001)
			}
		})
	}
}

func TestExtractInterests(t *testing.T) {
	extractor := NewRuleExtractor()

	t.Run("lexicon categories", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "he loves football and gaming")
		assert.Contains(t, criteria.Interests, "sports")
		assert.Contains(t, criteria.Interests, "technology")
	})

	t.Run("free-form hobby capture", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "she likes to paint and enjoys birdwatching")
		assert.Contains(t, criteria.Interests, "paint")
		assert.Contains(t, criteria.Interests, "birdwatching")
		// "painting" keyword is a whole word match only; "paint" alone still
		// lands in the art category via the hobby capture, not the lexicon.
		assert.NotContains(t, criteria.Interests, "art")
	})

	t.Run("fan of capture", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "a huge fan of chess")
		assert.Contains(t, criteria.Interests, "chess")
	})

	t.Run("interests are unique", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "football football rugby")
		count := 0
		for _, interest := range criteria.Interests {
			if interest == "sports" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}

func TestExtractOccasionAndRelationship(t *testing.T) {
	extractor := NewRuleExtractor()

	t.Run("first occasion in table order wins", func(t *testing.T) {
		// Text mentions both a wedding and a birthday; birthday is listed
		// first in the lexicon so it wins.
		criteria := extractor.Extract(context.Background(), "a wedding gift doubling as a birthday present")
		assert.Equal(t, "birthday", criteria.Occasion)
	})

	t.Run("relationship from noun", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "my coworker is leaving")
		assert.Equal(t, model.RelationshipColleague, criteria.Relationship)
	})

	t.Run("whole word only", func(t *testing.T) {
		// "smothered" must not match the "mother" keyword.
		criteria := extractor.Extract(context.Background(), "smothered in chocolate")
		assert.Empty(t, criteria.Relationship)
	})

	t.Run("absent when nothing matches", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(), "just a nice object")
		assert.Empty(t, criteria.Occasion)
		assert.Empty(t, criteria.Relationship)
	})
}

func TestExtractEndToEnd(t *testing.T) {
	extractor := NewRuleExtractor()

	t.Run("brother birthday scenario", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(),
			"Gift for my brother's 30th birthday, loves football, budget £50")

		assert.Equal(t, model.RelationshipFamily, criteria.Relationship)
		assert.Equal(t, "birthday", criteria.Occasion)
		assert.Contains(t, criteria.Interests, "sports")
		require.NotNil(t, criteria.MaxPrice)
		assert.InDelta(t, 50.0, *criteria.MaxPrice, 0.001)
		// "brother" is a relationship term, not a gender term.
		assert.Empty(t, criteria.Gender)
		// Categories are derived from interests, never hand-set.
		assert.Equal(t, MapCategories(criteria.Interests), criteria.Categories)
		assert.Contains(t, criteria.Categories, "sports_outdoor")
	})

	t.Run("pronoun votes on gender", func(t *testing.T) {
		criteria := extractor.Extract(context.Background(),
			"Gift for my brother's 30th birthday, he loves football")
		assert.Equal(t, model.GenderMale, criteria.Gender)
	})
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }
