package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// TreeTransformer parses markup with the HTML5 parsing algorithm instead
// of scanning it. Anchors whose text spans line breaks, or whose href is
// not the first attribute, are still found.
type TreeTransformer struct{}

func (TreeTransformer) Name() string { return ParserTree }

func (TreeTransformer) Normalize(markup string) string {
	root := parseFragment(markup)
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		normalizeNode(&b, c)
	}
	return b.String()
}

func normalizeNode(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.DataAtom {
	case atom.Br:
		b.WriteString("\n")
		return
	case atom.Div, atom.P:
		b.WriteString("\n")
		normalizeChildren(b, n)
		b.WriteString("\n\n")
		return
	case atom.A:
		href, ok := attr(n, "href")
		if !ok {
			normalizeChildren(b, n)
			return
		}
		b.WriteString(`<a href="`)
		b.WriteString(html.EscapeString(href))
		b.WriteString(`">`)
		normalizeChildren(b, n)
		b.WriteString("</a>")
		return
	}
	normalizeChildren(b, n)
}

func normalizeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		normalizeNode(b, c)
	}
}

func (TreeTransformer) Links(normalized string) []Link {
	doc := goquery.NewDocumentFromNode(parseFragment(normalized))
	links := make([]Link, 0)
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href := s.AttrOr("href", "")
		if href == "" {
			return
		}
		links = append(links, treeLink(href, s.Text()))
	})
	return links
}

func (TreeTransformer) ReplaceLinks(normalized string, replace func(Link) string) string {
	root := parseFragment(normalized)
	var b strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		replaceNode(&b, c, replace)
	}
	return b.String()
}

func replaceNode(b *strings.Builder, n *html.Node, replace func(Link) string) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
	default:
		return
	}
	if n.DataAtom == atom.A {
		if href, ok := attr(n, "href"); ok && href != "" {
			b.WriteString(replace(treeLink(href, textContent(n))))
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		replaceNode(b, c, replace)
	}
}

// treeLink builds a Link from parser output. The parser has already
// resolved one level of references; newLink resolves the rest.
func treeLink(href, text string) Link {
	return newLink(href, text)
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// parseFragment parses markup as the content of a <body> and returns that
// body with the parsed nodes attached.
func parseFragment(markup string) *html.Node {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), body)
	if err != nil {
		body.AppendChild(&html.Node{Type: html.TextNode, Data: markup})
		return body
	}
	for _, n := range nodes {
		body.AppendChild(n)
	}
	return body
}
