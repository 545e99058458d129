package markup

import (
	"regexp"
	"strings"

	"github.com/tengjizhang/linkconv/internal/entity"
)

var (
	blockOpenRe   = regexp.MustCompile(`(?i)<(?:div|p|br)\b[^>]*>`)
	blockCloseRe  = regexp.MustCompile(`(?i)</(?:div|p)\s*>`)
	targetBlankRe = regexp.MustCompile(`(?i)\s*target=["']?_blank["']?`)
	tagRe         = regexp.MustCompile(`<[^>]+>`)
	anchorOpenRe  = regexp.MustCompile(`(?i)^<a\s`)
	anchorCloseRe = regexp.MustCompile(`(?i)^</a\s*>$`)
	hrefAttrRe    = regexp.MustCompile(`(?i)\shref\s*=\s*(?:"([^"]*)"|'([^']*)')`)
	anchorRe      = regexp.MustCompile(`(?i)<a\s+href=["']([^"']+)["'][^>]*>(.*?)</a>`)
)

// RegexTransformer is the pattern-based Transformer. It does not build a
// tree: unterminated or badly nested tags are left in place as text.
type RegexTransformer struct{}

func (RegexTransformer) Name() string { return ParserRegex }

func (RegexTransformer) Normalize(markup string) string {
	out := blockOpenRe.ReplaceAllString(markup, "\n")
	out = blockCloseRe.ReplaceAllString(out, "\n\n")
	out = targetBlankRe.ReplaceAllString(out, "")
	return tagRe.ReplaceAllStringFunc(out, keepAnchorTag)
}

// keepAnchorTag drops every tag except anchors. Anchor open tags that
// carry an href are reduced to that single attribute.
func keepAnchorTag(tag string) string {
	if anchorCloseRe.MatchString(tag) {
		return "</a>"
	}
	if !anchorOpenRe.MatchString(tag) {
		return ""
	}
	loc := hrefAttrRe.FindStringSubmatchIndex(tag)
	if loc == nil {
		return tag
	}
	if loc[2] >= 0 {
		return `<a href="` + tag[loc[2]:loc[3]] + `">`
	}
	return `<a href='` + tag[loc[4]:loc[5]] + `'>`
}

func (RegexTransformer) Links(normalized string) []Link {
	matches := anchorRe.FindAllStringSubmatch(normalized, -1)
	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		links = append(links, newLink(m[1], m[2]))
	}
	return links
}

func (RegexTransformer) ReplaceLinks(normalized string, replace func(Link) string) string {
	locs := anchorRe.FindAllStringSubmatchIndex(normalized, -1)
	if len(locs) == 0 {
		return normalized
	}
	var b strings.Builder
	b.Grow(len(normalized))
	last := 0
	for _, loc := range locs {
		b.WriteString(normalized[last:loc[0]])
		b.WriteString(replace(newLink(normalized[loc[2]:loc[3]], normalized[loc[4]:loc[5]])))
		last = loc[1]
	}
	b.WriteString(normalized[last:])
	return b.String()
}

// newLink decodes the raw href and inner text of an anchor. Empty text
// falls back to the URL.
func newLink(rawHref, rawText string) Link {
	url := entity.Decode(rawHref)
	text := strings.TrimSpace(entity.Decode(rawText))
	if text == "" {
		text = url
	}
	return Link{URL: url, Text: text}
}

// StripTags removes anything shaped like a tag.
func StripTags(s string) string {
	return tagRe.ReplaceAllString(s, "")
}

// VisibleText approximates what an editor displays for markup: block tags
// become line breaks, other tags vanish and entities are decoded.
func VisibleText(markup string) string {
	out := blockOpenRe.ReplaceAllString(markup, "\n")
	out = blockCloseRe.ReplaceAllString(out, "\n")
	return entity.Decode(StripTags(out))
}

// IsBlank reports whether markup shows no text at all.
func IsBlank(markup string) bool {
	return strings.TrimSpace(VisibleText(markup)) == ""
}
