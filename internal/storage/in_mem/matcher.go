package in_mem

import (
	"regexp"
	"strings"

	"github.com/DjordjeVuckovic/book-hunter/internal/domain"
)

// TextMatcher matches a term as a literal, case-insensitive substring of the searchable fields.
// The term is quoted so pattern syntax in user input has no effect.
type TextMatcher struct {
	re *regexp.Regexp
}

func NewTextMatcher(term string) *TextMatcher {
	return &TextMatcher{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(strings.TrimSpace(term)))}
}

func (m *TextMatcher) Match(b domain.Book) bool {
	return m.re.MatchString(b.Title) ||
		m.re.MatchString(b.Author) ||
		m.re.MatchString(b.ISBN) ||
		m.re.MatchString(b.Description)
}
