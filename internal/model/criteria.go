package model

// Gender values recognized by the extractor. An empty string means the
// description carried no gendered terms at all.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Relationship values produced by the extractor.
const (
	RelationshipFriend    = "friend"
	RelationshipFamily    = "family"
	RelationshipRomantic  = "romantic"
	RelationshipColleague = "colleague"
)

// Criteria is the structured query derived from a free-text gift
// description. Absent fields are nil or empty; callers must treat an absent
// MaxPrice differently from a zero budget.
type Criteria struct {
	Age          *int     `json:"age,omitempty"`
	MaxPrice     *float64 `json:"max_price,omitempty"`
	Gender       string   `json:"gender,omitempty"`
	Occasion     string   `json:"occasion,omitempty"`
	Relationship string   `json:"relationship,omitempty"`
	Interests    []string `json:"interests"`
	// Categories is always derived from Interests via extract.MapCategories,
	// never set directly.
	Categories []string `json:"categories"`
}

// IsEmpty reports whether no field of the criteria was extracted.
func (c *Criteria) IsEmpty() bool {
	return c.Age == nil &&
		c.MaxPrice == nil &&
		c.Gender == "" &&
		c.Occasion == "" &&
		c.Relationship == "" &&
		len(c.Interests) == 0 &&
		len(c.Categories) == 0
}
