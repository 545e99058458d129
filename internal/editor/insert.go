package editor

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/tengjizhang/linkconv/internal/model"
)

var (
	anchorOpenTagRe  = regexp.MustCompile(`^<a[\s>]`)
	anchorCloseTagRe = regexp.MustCompile(`^</a\s*>`)
	charRefRe        = regexp.MustCompile(`&[#A-Za-z0-9]+;?`)
)

// EditContext names the section and the byte range of its markup that an
// edit applies to. End is exclusive.
type EditContext struct {
	SectionID int64 `json:"section_id"`
	Start     int   `json:"start"`
	End       int   `json:"end"`
}

// SectionModifier rewrites a section's markup atomically. The edit function
// may reject the change by returning an error; the section is then left
// untouched.
type SectionModifier interface {
	ModifySection(ctx context.Context, id int64, edit func(markup string) (string, error)) (model.Section, error)
}

// ValidateURL accepts absolute URLs only, the way a browser URL constructor
// would: a scheme plus either a host or an opaque part.
func ValidateURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidURL
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || (u.Host == "" && u.Opaque == "" && u.Path == "") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return raw, nil
}

// InsertLink wraps the range named by ec in an anchor pointing at rawURL.
// Nothing is written when the URL or the range is rejected.
func InsertLink(ctx context.Context, sections SectionModifier, ec EditContext, rawURL string) (model.Section, error) {
	href, err := ValidateURL(rawURL)
	if err != nil {
		return model.Section{}, err
	}
	if ec.End <= ec.Start {
		return model.Section{}, ErrNoSelection
	}
	return sections.ModifySection(ctx, ec.SectionID, func(markup string) (string, error) {
		return WrapRange(markup, ec.Start, ec.End, href)
	})
}

// WrapRange returns markup with markup[start:end] wrapped in an anchor.
func WrapRange(markup string, start, end int, href string) (string, error) {
	if end <= start {
		return "", ErrNoSelection
	}
	if err := checkRange(markup, start, end); err != nil {
		return "", err
	}
	var b strings.Builder
	b.Grow(len(markup) + len(href) + 15)
	b.WriteString(markup[:start])
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(href))
	b.WriteString(`">`)
	b.WriteString(markup[start:end])
	b.WriteString(`</a>`)
	b.WriteString(markup[end:])
	return b.String(), nil
}

// FindText locates the first occurrence of text in markup that can be
// wrapped in a link and returns its byte range.
func FindText(markup, text string) (int, int, error) {
	if text == "" {
		return 0, 0, ErrNoSelection
	}
	offset := 0
	for {
		i := strings.Index(markup[offset:], text)
		if i < 0 {
			return 0, 0, fmt.Errorf("%w: %q", ErrTextNotFound, text)
		}
		start := offset + i
		end := start + len(text)
		if checkRange(markup, start, end) == nil {
			return start, end, nil
		}
		offset = start + 1
	}
}

// checkRange rejects ranges that are out of bounds, split a UTF-8
// sequence or character reference, touch a tag, or sit inside an existing
// anchor.
func checkRange(markup string, start, end int) error {
	if start < 0 || end > len(markup) || start >= end {
		return fmt.Errorf("%w: [%d,%d) outside 0..%d", ErrInvalidRange, start, end, len(markup))
	}
	if !utf8.RuneStart(markup[start]) || (end < len(markup) && !utf8.RuneStart(markup[end])) {
		return fmt.Errorf("%w: [%d,%d) splits a character", ErrInvalidRange, start, end)
	}
	if strings.ContainsAny(markup[start:end], "<>") {
		return fmt.Errorf("%w: [%d,%d) contains markup", ErrInvalidRange, start, end)
	}
	if splitsCharRef(markup, start) || splitsCharRef(markup, end) {
		return fmt.Errorf("%w: [%d,%d) splits a character reference", ErrInvalidRange, start, end)
	}
	inTag, anchorDepth := scanContext(markup[:start])
	if inTag || anchorDepth > 0 {
		return fmt.Errorf("%w: [%d,%d) is inside a tag or link", ErrInvalidRange, start, end)
	}
	return nil
}

// splitsCharRef reports whether pos falls strictly inside a character
// reference such as "&amp;" or an unterminated "&am" run.
func splitsCharRef(markup string, pos int) bool {
	for _, loc := range charRefRe.FindAllStringIndex(markup, -1) {
		if loc[0] >= pos {
			return false
		}
		if pos < loc[1] {
			return true
		}
	}
	return false
}

// scanContext reports whether prefix ends inside an unterminated tag and
// how many anchors are still open at its end.
func scanContext(prefix string) (bool, int) {
	depth := 0
	for {
		open := strings.IndexByte(prefix, '<')
		if open < 0 {
			return false, depth
		}
		gt := strings.IndexByte(prefix[open:], '>')
		if gt < 0 {
			return true, depth
		}
		tag := strings.ToLower(prefix[open : open+gt+1])
		switch {
		case anchorOpenTagRe.MatchString(tag):
			depth++
		case anchorCloseTagRe.MatchString(tag):
			if depth > 0 {
				depth--
			}
		}
		prefix = prefix[open+gt+1:]
	}
}
