package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/model"
)

const excerptRunes = 60

// Summarize reports the character count, anchor count and a one-line
// excerpt of a section.
func Summarize(t markup.Transformer, s model.Section) model.SectionSummary {
	return model.SectionSummary{
		ID:         s.ID,
		Characters: CharCount(s.Markup),
		Links:      len(t.Links(t.Normalize(s.Markup))),
		Excerpt:    excerpt(markup.VisibleText(s.Markup)),
		UpdatedAt:  s.UpdatedAt,
	}
}

func excerpt(visible string) string {
	v := strings.Join(strings.Fields(visible), " ")
	if utf8.RuneCountInString(v) <= excerptRunes {
		return v
	}
	r := []rune(v)
	return string(r[:excerptRunes-3]) + "..."
}
