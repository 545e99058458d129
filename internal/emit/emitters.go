package emit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tengjizhang/linkconv/internal/entity"
	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/model"
)

// Emitter renders normalized markup into one format. Emitters keep no
// state between calls.
type Emitter func(t markup.Transformer, normalized string) string

var emitters = map[Format]Emitter{
	HTML:        emitHTML,
	Markdown:    emitMarkdown,
	BBCode:      emitBBCode,
	Raw:         emitRaw,
	Slack:       emitSlack,
	JSON:        emitJSON,
	RefMarkdown: emitRefMarkdown,
}

// EmitterFor returns the emitter of f, or nil for an unknown format.
func EmitterFor(f Format) Emitter {
	return emitters[f]
}

func emitHTML(_ markup.Transformer, normalized string) string {
	return entity.Decode(normalized)
}

func emitMarkdown(t markup.Transformer, normalized string) string {
	return entity.Decode(t.ReplaceLinks(normalized, func(l model.Link) string {
		return "[" + l.Text + "](" + l.URL + ")"
	}))
}

func emitBBCode(t markup.Transformer, normalized string) string {
	return entity.Decode(t.ReplaceLinks(normalized, func(l model.Link) string {
		return "[url=" + l.URL + "]" + l.Text + "[/url]"
	}))
}

func emitRaw(t markup.Transformer, normalized string) string {
	out := t.ReplaceLinks(normalized, func(l model.Link) string {
		return l.Text + " (" + l.URL + ")"
	})
	return markup.StripTags(entity.Decode(out))
}

func emitSlack(t markup.Transformer, normalized string) string {
	return entity.Decode(t.ReplaceLinks(normalized, func(l model.Link) string {
		return "<" + l.URL + "|" + l.Text + ">"
	}))
}

func emitJSON(t markup.Transformer, normalized string) string {
	return encodeLinks(t.Links(normalized))
}

// encodeLinks writes links as an indented JSON array. HTML characters in
// URLs stay literal.
func encodeLinks(links []model.Link) string {
	if links == nil {
		links = []model.Link{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(links); err != nil {
		return "[]"
	}
	return strings.TrimRight(buf.String(), "\n")
}

// emitRefMarkdown numbers anchors from 1 in document order and appends
// one "[N]: URL" definition per anchor after a blank line.
func emitRefMarkdown(t markup.Transformer, normalized string) string {
	var defs strings.Builder
	n := 0
	body := t.ReplaceLinks(normalized, func(l model.Link) string {
		n++
		fmt.Fprintf(&defs, "[%d]: %s\n", n, l.URL)
		return fmt.Sprintf("[%s][%d]", l.Text, n)
	})
	return entity.Decode(body + "\n\n" + strings.TrimSpace(defs.String()))
}
