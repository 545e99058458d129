// Package emit renders normalized editor markup into the supported link
// formats.
package emit

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownFormat = errors.New("unknown format")

type Format string

const (
	HTML        Format = "html"
	Markdown    Format = "markdown"
	BBCode      Format = "bbcode"
	Raw         Format = "raw"
	Slack       Format = "slack"
	JSON        Format = "json"
	RefMarkdown Format = "refmd"
)

// Formats lists every format in display order.
var Formats = []Format{HTML, Markdown, BBCode, Raw, Slack, JSON, RefMarkdown}

type formatInfo struct {
	ext  string
	mime string
}

var formatTable = map[Format]formatInfo{
	HTML:        {ext: "html", mime: "text/html"},
	Markdown:    {ext: "md", mime: "text/markdown"},
	RefMarkdown: {ext: "md", mime: "text/markdown"},
	BBCode:      {ext: "txt", mime: "text/plain"},
	Raw:         {ext: "txt", mime: "text/plain"},
	Slack:       {ext: "txt", mime: "text/plain"},
	JSON:        {ext: "json", mime: "application/json"},
}

func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := formatTable[f]; !ok {
		return "", fmt.Errorf("%w %q (expected %s)", ErrUnknownFormat, raw, formatNames())
	}
	return f, nil
}

// Extension is the file extension used when the format is downloaded,
// without the leading dot.
func (f Format) Extension() string {
	return formatTable[f].ext
}

func (f Format) MIMEType() string {
	if info, ok := formatTable[f]; ok {
		return info.mime
	}
	return "text/plain"
}

func formatNames() string {
	names := make([]string, 0, len(Formats))
	for _, f := range Formats {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}
