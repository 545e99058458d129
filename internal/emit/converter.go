package emit

import (
	"strings"

	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/model"
)

// Result holds one rendering per format plus the anchors they were built
// from.
type Result struct {
	HTML        string       `json:"html"`
	Markdown    string       `json:"markdown"`
	BBCode      string       `json:"bbcode"`
	Raw         string       `json:"raw"`
	Slack       string       `json:"slack"`
	JSON        string       `json:"json"`
	RefMarkdown string       `json:"refmd"`
	Links       []model.Link `json:"links"`
}

// Output returns the rendering for f.
func (r Result) Output(f Format) string {
	switch f {
	case HTML:
		return r.HTML
	case Markdown:
		return r.Markdown
	case BBCode:
		return r.BBCode
	case Raw:
		return r.Raw
	case Slack:
		return r.Slack
	case JSON:
		return r.JSON
	case RefMarkdown:
		return r.RefMarkdown
	default:
		return ""
	}
}

// Outputs returns the renderings keyed by format name.
func (r Result) Outputs() map[Format]string {
	out := make(map[Format]string, len(Formats))
	for _, f := range Formats {
		out[f] = r.Output(f)
	}
	return out
}

// Converter runs every emitter over one input. It is safe for concurrent
// use.
type Converter struct {
	transformer markup.Transformer
}

func NewConverter(t markup.Transformer) *Converter {
	if t == nil {
		t = markup.RegexTransformer{}
	}
	return &Converter{transformer: t}
}

func (c *Converter) Transformer() markup.Transformer {
	return c.transformer
}

// Convert renders src into every format. ok is false when src is blank;
// no emitter runs then and callers should display a placeholder instead
// of empty output.
func (c *Converter) Convert(src string) (res Result, ok bool) {
	if strings.TrimSpace(src) == "" {
		return Result{}, false
	}
	normalized := c.transformer.Normalize(src)
	return Result{
		HTML:        emitHTML(c.transformer, normalized),
		Markdown:    emitMarkdown(c.transformer, normalized),
		BBCode:      emitBBCode(c.transformer, normalized),
		Raw:         emitRaw(c.transformer, normalized),
		Slack:       emitSlack(c.transformer, normalized),
		JSON:        emitJSON(c.transformer, normalized),
		RefMarkdown: emitRefMarkdown(c.transformer, normalized),
		Links:       c.transformer.Links(normalized),
	}, true
}

// ConvertFormat renders src into a single format.
func (c *Converter) ConvertFormat(src string, f Format) (string, bool) {
	if strings.TrimSpace(src) == "" {
		return "", false
	}
	e := EmitterFor(f)
	if e == nil {
		return "", false
	}
	return e(c.transformer, c.transformer.Normalize(src)), true
}
