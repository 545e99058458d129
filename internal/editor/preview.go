package editor

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tengjizhang/linkconv/internal/model"
)

const (
	NoTextTitle    = "No Text"
	NoLinksMessage = "No links found in the active editor."
)

// Preview lists the anchors of raw section markup as link cards. Anchors
// without an href are skipped; anchors without text get NoTextTitle.
func Preview(m string) []model.LinkPreview {
	previews := make([]model.LinkPreview, 0)
	z := html.NewTokenizer(strings.NewReader(m))

	var (
		inAnchor bool
		href     string
		text     strings.Builder
	)
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			return previews
		case html.StartTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A {
				continue
			}
			href, inAnchor = anchorHref(tok)
			text.Reset()
		case html.TextToken:
			if inAnchor {
				text.Write(z.Text())
			}
		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom != atom.A || !inAnchor {
				continue
			}
			inAnchor = false
			title := strings.TrimSpace(text.String())
			if title == "" {
				title = NoTextTitle
			}
			previews = append(previews, model.LinkPreview{Title: title, URL: href})
		}
	}
}

func anchorHref(tok html.Token) (string, bool) {
	for _, attr := range tok.Attr {
		if attr.Key == "href" && strings.TrimSpace(attr.Val) != "" {
			return attr.Val, true
		}
	}
	return "", false
}
