package moderation

// DefaultBannedWords is the built-in list applied when no external list is
// configured. Kept deliberately small; operators supply the real list.
var DefaultBannedWords = []string{
	"spam",
	"scam",
	"도박",
	"광고",
}

// KeywordFilter rejects comments containing banned keywords. Input is
// normalized first, so separators and case cannot hide a keyword.
type KeywordFilter struct {
	matcher *Matcher
}

// NewKeywordFilter builds a filter over the given word list. The words are
// normalized with the same rules as the checked text.
func NewKeywordFilter(words []string) *KeywordFilter {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if n := Normalize(w); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &KeywordFilter{matcher: NewMatcher(normalized)}
}

// Rejects reports whether content contains a banned keyword, returning the
// first keyword hit.
func (f *KeywordFilter) Rejects(content string) (string, bool) {
	word := f.matcher.Find(Normalize(content))
	return word, word != ""
}
