package extract

// strategy is one attempt in a field's fallback chain: it inspects a
// container and either produces a candidate string or reports no match.
type strategy func(el Element) (string, bool)

// firstMatch evaluates strategies in order and returns the first
// candidate produced. Later strategies in the chain are never run once
// one succeeds.
func firstMatch(el Element, chain []strategy) (string, bool) {
	for _, s := range chain {
		if v, ok := s(el); ok {
			return v, true
		}
	}
	return "", false
}

// selectText matches the first element for the pattern and yields its
// text, treating empty text as no match.
func selectText(pattern string) strategy {
	return func(el Element) (string, bool) {
		found, ok := el.SelectOne(pattern)
		if !ok {
			return "", false
		}
		text := found.Text()
		return text, text != ""
	}
}

// selectAttrOrText matches the first element for the pattern and yields
// the named attribute when present, falling back to the element text.
// This covers microdata like <meta itemprop="price" content="19.99">
// alongside visible <span itemprop="price">$19.99</span> markup.
func selectAttrOrText(pattern, attr string) strategy {
	return func(el Element) (string, bool) {
		found, ok := el.SelectOne(pattern)
		if !ok {
			return "", false
		}
		if v, ok := found.Attr(attr); ok && v != "" {
			return v, true
		}
		text := found.Text()
		return text, text != ""
	}
}
