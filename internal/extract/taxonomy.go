package extract

import "strings"

// categoryTable maps name keywords to one taxonomy label.
type categoryTable struct {
	Label    string
	Keywords []string
}

// categoryTables is the fixed taxonomy, in priority order: the first
// table with a keyword hit wins, so specific garment types come before
// broader ones. A name containing both "hoodie" and "jacket" resolves
// to "Hoodies & Sweatshirts" because that table is checked first.
var categoryTables = []categoryTable{
	{"Hoodies & Sweatshirts", []string{"hoodie", "sweatshirt", "sweater", "pullover", "crewneck", "cardigan"}},
	{"Jackets & Coats", []string{"jacket", "coat", "parka", "windbreaker", "blazer", "vest"}},
	{"Dresses", []string{"dress", "gown", "romper", "jumpsuit"}},
	{"Shirts & Tops", []string{"shirt", "t-shirt", "tee", "top", "blouse", "polo", "tank", "henley"}},
	{"Pants & Bottoms", []string{"pants", "pant", "jeans", "trouser", "chino", "legging", "jogger", "shorts", "skirt"}},
	{"Footwear", []string{"shoe", "sneaker", "boot", "sandal", "slipper", "heel", "loafer", "trainer"}},
	{"Accessories", []string{"hat", "cap", "beanie", "scarf", "glove", "belt", "bag", "sock", "wallet", "backpack", "tote", "sunglasses"}},
}

// CategoryOther is the label for names no table matches.
const CategoryOther = "Other"

// Category derives a taxonomy label from a product name.
func Category(name string) string {
	lower := strings.ToLower(name)
	for _, table := range categoryTables {
		for _, kw := range table.Keywords {
			if strings.Contains(lower, kw) {
				return table.Label
			}
		}
	}
	return CategoryOther
}

// colorTerms are recognized color words. Matched as substrings of the
// lowercased name; all matches are kept.
var colorTerms = []string{
	"black", "white", "red", "blue", "navy", "green", "olive",
	"yellow", "orange", "purple", "pink", "brown", "tan", "beige",
	"grey", "gray", "cream", "ivory", "maroon", "burgundy", "teal",
	"khaki", "charcoal", "gold", "silver",
}

// Colors derives color tags from a product name, lowercased and
// deduplicated.
func Colors(name string) []string {
	lower := strings.ToLower(name)
	seen := make(map[string]struct{})
	var out []string
	for _, c := range colorTerms {
		if strings.Contains(lower, c) {
			if _, dup := seen[c]; !dup {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}

// sizeTerms are recognized size tokens. Matched against whole
// whitespace-separated tokens only: single letters like "s" or "m"
// would otherwise hit inside ordinary words.
var sizeTerms = map[string]struct{}{
	"xs": {}, "s": {}, "m": {}, "l": {}, "xl": {}, "xxl": {}, "xxxl": {},
	"2xl": {}, "3xl": {}, "4xl": {},
	"small": {}, "medium": {}, "large": {},
}

// Sizes derives size tags from a product name, lowercased and
// deduplicated.
func Sizes(name string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, tok := range strings.Fields(strings.ToLower(name)) {
		tok = strings.Trim(tok, "()[],/")
		if _, ok := sizeTerms[tok]; ok {
			if _, dup := seen[tok]; !dup {
				seen[tok] = struct{}{}
				out = append(out, tok)
			}
		}
	}
	return out
}
