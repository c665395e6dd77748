// Package lexicon holds the static keyword tables used by the rule-based
// criteria extractor. Single-valued fields (occasion, relationship) are
// resolved by the first entry whose keyword list matches, so entry order is
// part of the contract and the tables are ordered slices, not maps.
package lexicon

// Entry maps a semantic category to its trigger keywords.
type Entry struct {
	Category string
	Keywords []string
}

// Interests maps interest categories to trigger keywords. Interests are
// multi-valued; every matching entry contributes.
var Interests = []Entry{
	{Category: "sports", Keywords: []string{
		"football", "basketball", "tennis", "golf", "fitness", "running",
		"cycling", "swimming", "yoga", "gym", "exercise", "rugby", "cricket",
		"boxing", "martial arts", "climbing", "volleyball", "skiing",
		"snowboarding", "surfing", "athletics", "baseball", "soccer",
	}},
	{Category: "technology", Keywords: []string{
		"gaming", "computers", "gadgets", "tech", "electronics", "video games",
		"programming", "coding", "pc", "playstation", "xbox", "nintendo",
		"smartphone", "tablet", "smart home", "vr", "virtual reality",
		"drones", "photography", "cameras", "audio", "headphones",
	}},
	{Category: "cooking", Keywords: []string{
		"cooking", "baking", "kitchen", "food", "culinary", "chef",
		"bbq", "barbecue", "grilling", "wine", "cocktails", "mixology",
		"brewing", "coffee", "tea", "vegan", "vegetarian", "desserts",
		"pastry", "gourmet", "foodie", "recipes", "dining",
	}},
	{Category: "art", Keywords: []string{
		"painting", "drawing", "crafts", "artistic", "creative",
		"sculpture", "pottery", "ceramics", "photography", "digital art",
		"illustration", "design", "sketching", "calligraphy", "printmaking",
		"jewelry making", "woodworking", "knitting", "sewing", "crafting",
	}},
	{Category: "music", Keywords: []string{
		"music", "guitar", "piano", "singing", "concerts", "drums",
		"violin", "bass", "dj", "electronic music", "rock", "classical",
		"jazz", "hip hop", "rap", "musical theatre", "opera", "festivals",
		"vinyl", "records", "instruments", "band",
	}},
	{Category: "reading", Keywords: []string{
		"books", "reading", "literature", "novels", "poetry", "comics",
		"manga", "sci-fi", "fantasy", "mystery", "thriller", "biography",
		"history books", "non-fiction", "kindle", "audiobooks", "writing",
		"book club", "storytelling",
	}},
	{Category: "outdoor", Keywords: []string{
		"hiking", "camping", "adventure", "nature", "gardening",
		"fishing", "hunting", "bird watching", "photography", "rock climbing",
		"mountaineering", "kayaking", "canoeing", "sailing", "beach",
		"national parks", "wilderness", "survival", "bushcraft", "foraging",
	}},
	{Category: "fashion", Keywords: []string{
		"clothes", "fashion", "shopping", "style", "shoes", "accessories",
		"jewelry", "watches", "bags", "designer", "vintage", "streetwear",
		"sustainable fashion", "beauty", "makeup", "skincare", "perfume",
		"grooming", "luxury",
	}},
	{Category: "wellness", Keywords: []string{
		"meditation", "mindfulness", "yoga", "spa", "massage",
		"aromatherapy", "self-care", "health", "nutrition", "wellness",
		"mental health", "relaxation", "pilates", "alternative medicine",
		"natural remedies",
	}},
	{Category: "collecting", Keywords: []string{
		"stamps", "coins", "antiques", "vintage", "memorabilia",
		"action figures", "cards", "comics", "art prints", "vinyl records",
		"toys", "models", "collectibles",
	}},
	{Category: "travel", Keywords: []string{
		"travel", "tourism", "backpacking", "sightseeing", "culture",
		"languages", "photography", "road trips", "flying", "cruises",
		"hotels", "resorts", "vacation", "exploration",
	}},
	{Category: "animals", Keywords: []string{
		"dogs", "cats", "pets", "animals", "birds", "fish",
		"reptiles", "pet care", "veterinary", "training", "grooming",
		"animal welfare", "pigs",
	}},
	{Category: "entertaining", Keywords: []string{
		"hosting", "parties", "entertaining", "board games", "card games",
		"party planning", "dinner parties", "games night", "social events",
		"party games", "tabletop games", "puzzles", "trivia", "game night",
		"hospitality", "party host", "gatherings", "friends", "family",
	}},
}

// Occasions maps occasion categories to trigger keywords. Occasion is
// single-valued: the first matching entry wins, so texts naming several
// occasions lose all but the earliest listed here. That information loss is
// a documented limitation of the single-value contract.
var Occasions = []Entry{
	{Category: "birthday", Keywords: []string{
		"birthday", "bday", "birth day", "birthdays", "born",
		"special day", "another year",
	}},
	{Category: "christmas", Keywords: []string{
		"christmas", "xmas", "holiday season", "festive", "december 25",
		"santa", "christmas day", "holidays", "winter holidays",
	}},
	{Category: "anniversary", Keywords: []string{
		"anniversary", "wedding anniversary", "years together",
		"relationship milestone", "yearly celebration", "married years",
	}},
	{Category: "wedding", Keywords: []string{
		"wedding", "marriage", "getting married", "bride", "groom",
		"bridal", "engagement", "honeymoon", "newlyweds",
	}},
	{Category: "graduation", Keywords: []string{
		"graduation", "graduating", "graduate", "diploma", "degree",
		"academic achievement", "university", "college", "school completion",
	}},
	{Category: "housewarming", Keywords: []string{
		"housewarming", "new home", "moving house", "first home",
		"moving in", "new apartment", "new house",
	}},
	{Category: "valentines", Keywords: []string{
		"valentines", "valentine's day", "valentine", "romance",
		"romantic", "february 14", "love",
	}},
	{Category: "mothers_day", Keywords: []string{
		"mothers day", "mother's day", "mum", "mom", "mama",
		"mothering sunday",
	}},
	{Category: "fathers_day", Keywords: []string{
		"fathers day", "father's day", "dad", "papa", "daddy",
	}},
	{Category: "easter", Keywords: []string{
		"easter", "paschal", "spring holiday",
	}},
	{Category: "retirement", Keywords: []string{
		"retirement", "retiring", "pension", "end of career",
		"work farewell", "professional milestone",
	}},
	{Category: "baby_shower", Keywords: []string{
		"baby shower", "expecting", "pregnancy", "new baby",
		"baby celebration", "mother to be",
	}},
	{Category: "thank_you", Keywords: []string{
		"thank you", "thanks", "appreciation", "grateful",
		"gratitude", "recognition",
	}},
}

// Relationships maps relationship categories to trigger keywords.
// Single-valued, first match wins. Relationship nouns like "brother" live
// here and only here; the gender term sets below are disjoint from them so
// a relationship word never votes on gender.
var Relationships = []Entry{
	{Category: "friend", Keywords: []string{"friend"}},
	{Category: "family", Keywords: []string{
		"mother", "father", "sister", "brother", "mom", "dad",
		"aunt", "uncle", "cousin", "grandmother", "grandfather",
	}},
	{Category: "romantic", Keywords: []string{
		"boyfriend", "girlfriend", "partner", "spouse", "husband", "wife",
	}},
	{Category: "colleague", Keywords: []string{
		"colleague", "coworker", "boss", "employee",
	}},
}

// MaleTerms and FemaleTerms are the whole-word vote sets for gender
// extraction. Male is counted first and wins nonzero ties.
var (
	MaleTerms   = []string{"man", "boy", "male", "him", "his", "he"}
	FemaleTerms = []string{"woman", "girl", "female", "her", "she"}
)

// CategoryMapping expands extracted interests into retrieval categories.
// Unknown interests contribute nothing. Keyed lookups only; never iterated
// for single-value resolution, so a map is fine here.
var CategoryMapping = map[string][]string{
	"sports":        {"sports_outdoor", "fitness", "experiences", "adventure"},
	"technology":    {"electronics", "gadgets", "gaming", "smart_home", "photography"},
	"cooking":       {"kitchen", "food_drink", "gourmet", "cooking_classes", "experiences"},
	"art":           {"crafts", "creative", "art_supplies", "home_decor", "experiences"},
	"music":         {"entertainment", "experiences", "music_equipment", "concert_tickets"},
	"reading":       {"books", "education", "entertainment", "subscriptions"},
	"outdoor":       {"adventure", "experiences", "sports_outdoor", "garden", "travel"},
	"fashion":       {"fashion", "accessories", "jewelry", "beauty", "luxury"},
	"wellness":      {"beauty", "spa", "fitness", "health", "experiences"},
	"collecting":    {"collectibles", "antiques", "art", "memorabilia"},
	"travel":        {"experiences", "adventure", "travel_accessories", "luggage"},
	"pets":          {"pets", "animals", "experiences"},
	"animals":       {"pets", "animals", "experiences"},
	"gaming":        {"gaming", "electronics", "entertainment"},
	"photography":   {"photography", "electronics", "experiences", "art"},
	"beauty":        {"beauty", "fashion", "spa", "luxury"},
	"food":          {"food_drink", "gourmet", "experiences", "kitchen"},
	"wine":          {"food_drink", "experiences", "gourmet"},
	"crafts":        {"crafts", "creative", "art_supplies", "hobbies"},
	"gardening":     {"garden", "outdoor", "home", "experiences"},
	"home":          {"home_decor", "smart_home", "kitchen", "garden"},
	"luxury":        {"luxury", "experiences", "fashion", "jewelry"},
	"entertainment": {"entertainment", "experiences", "gadgets", "subscriptions"},
	"entertaining":  {"entertainment", "experiences", "gadgets", "subscriptions"},
}
