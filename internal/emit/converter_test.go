package emit

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/model"
)

func converters() map[string]*Converter {
	return map[string]*Converter{
		markup.ParserRegex: NewConverter(markup.RegexTransformer{}),
		markup.ParserTree:  NewConverter(markup.TreeTransformer{}),
	}
}

func TestConvert_HelloWorld(t *testing.T) {
	for name, c := range converters() {
		t.Run(name, func(t *testing.T) {
			res, ok := c.Convert(`Hello <a href="https://example.com">world</a>!`)
			require.True(t, ok)
			require.Equal(t, `Hello <a href="https://example.com">world</a>!`, res.HTML)
			require.Equal(t, "Hello [world](https://example.com)!", res.Markdown)
			require.Equal(t, "Hello [url=https://example.com]world[/url]!", res.BBCode)
			require.Equal(t, "Hello world (https://example.com)!", res.Raw)
			require.Equal(t, "Hello <https://example.com|world>!", res.Slack)
			require.JSONEq(t, `[{"url":"https://example.com","text":"world"}]`, res.JSON)
			require.Equal(t, "Hello [world][1]!\n\n[1]: https://example.com", res.RefMarkdown)
			require.Equal(t, []model.Link{{URL: "https://example.com", Text: "world"}}, res.Links)
		})
	}
}

func TestConvert_SingleAnchorTemplates(t *testing.T) {
	c := NewConverter(nil)
	res, ok := c.Convert(`<a href="https://u.example/path">T</a>`)
	require.True(t, ok)
	require.Equal(t, "[T](https://u.example/path)", res.Markdown)
	require.Equal(t, "[url=https://u.example/path]T[/url]", res.BBCode)
	require.Equal(t, "<https://u.example/path|T>", res.Slack)
	require.Equal(t, "T (https://u.example/path)", res.Raw)
}

func TestConvert_JSONIsIndented(t *testing.T) {
	res, ok := NewConverter(nil).Convert(`<a href="https://e.com/?a=1&amp;b=&lt;2&gt;">x</a>`)
	require.True(t, ok)
	require.Equal(t, "[\n  {\n    \"url\": \"https://e.com/?a=1&b=<2>\",\n    \"text\": \"x\"\n  }\n]", res.JSON)
}

func TestConvert_NoAnchors(t *testing.T) {
	for name, c := range converters() {
		t.Run(name, func(t *testing.T) {
			res, ok := c.Convert(`<div>Just <b>bold</b> text &amp; more</div><p>and a paragraph</p>`)
			require.True(t, ok)
			require.Equal(t, "[]", res.JSON)
			require.Empty(t, res.Links)
			for _, f := range []Format{Markdown, BBCode, Raw, Slack, RefMarkdown, HTML} {
				out := res.Output(f)
				require.NotContains(t, out, "](", f)
				require.NotContains(t, out, "[url=", f)
				require.NotContains(t, out, "|", f)
				require.NotContains(t, out, "[1]", f)
			}
			require.Equal(t, "\nJust bold text & more\n\n\nand a paragraph\n\n", res.Raw)
		})
	}
}

func TestConvert_EmptyTextAnchorFallsBackToURL(t *testing.T) {
	for name, c := range converters() {
		t.Run(name, func(t *testing.T) {
			res, ok := c.Convert(`<a href="https://e.com"></a>`)
			require.True(t, ok)
			require.Equal(t, "[https://e.com](https://e.com)", res.Markdown)
			require.Equal(t, "[url=https://e.com]https://e.com[/url]", res.BBCode)
			require.Equal(t, "https://e.com (https://e.com)", res.Raw)
			require.Equal(t, "<https://e.com|https://e.com>", res.Slack)
			require.Equal(t, "[https://e.com][1]\n\n[1]: https://e.com", res.RefMarkdown)
			require.JSONEq(t, `[{"url":"https://e.com","text":"https://e.com"}]`, res.JSON)
		})
	}
}

func TestConvert_RefMarkdownNumbersInDocumentOrder(t *testing.T) {
	in := `<p>First <a href="https://a.example">A</a></p><p>Second <a href="https://b.example">B</a></p>`
	for name, c := range converters() {
		t.Run(name, func(t *testing.T) {
			res, ok := c.Convert(in)
			require.True(t, ok)
			require.Equal(t, []model.Link{
				{URL: "https://a.example", Text: "A"},
				{URL: "https://b.example", Text: "B"},
			}, res.Links)
			require.Contains(t, res.RefMarkdown, "First [A][1]")
			require.Contains(t, res.RefMarkdown, "Second [B][2]")
			require.True(t, strings.HasSuffix(res.RefMarkdown, "\n\n[1]: https://a.example\n[2]: https://b.example"), res.RefMarkdown)
		})
	}
}

func TestConvert_RefMarkdownNumberingHasNoGaps(t *testing.T) {
	var b strings.Builder
	const n = 12
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, `<div><a href="https://e.com/%d">link %d</a></div>`, i, i)
	}
	res, ok := NewConverter(nil).Convert(b.String())
	require.True(t, ok)
	for i := 1; i <= n; i++ {
		require.Contains(t, res.RefMarkdown, fmt.Sprintf("[link %d][%d]", i, i))
		require.Contains(t, res.RefMarkdown, fmt.Sprintf("[%d]: https://e.com/%d", i, i))
	}
	require.NotContains(t, res.RefMarkdown, fmt.Sprintf("[%d]", n+1))
}

func TestConvert_RepeatedCallsAreIndependent(t *testing.T) {
	c := NewConverter(nil)
	in := `<a href="https://1.example">one</a> <a href="https://2.example">two</a>`
	first, _ := c.Convert(in)
	second, _ := c.Convert(in)
	require.Equal(t, first, second)
	require.Contains(t, second.RefMarkdown, "[two][2]")
}

func TestConvert_DuplicatesPreserved(t *testing.T) {
	res, ok := NewConverter(nil).Convert(`<a href="https://d.example">d</a> and <a href="https://d.example">d</a>`)
	require.True(t, ok)
	require.Len(t, res.Links, 2)
	var manifest []model.Link
	require.NoError(t, json.Unmarshal([]byte(res.JSON), &manifest))
	require.Len(t, manifest, 2)
}

func TestConvert_EmptyInput(t *testing.T) {
	c := NewConverter(nil)
	for _, in := range []string{"", "   ", "\n\t"} {
		res, ok := c.Convert(in)
		require.False(t, ok)
		require.Equal(t, Result{}, res)
		_, ok = c.ConvertFormat(in, Markdown)
		require.False(t, ok)
	}
}

func TestConvert_EntitiesDecodedEverywhere(t *testing.T) {
	res, ok := NewConverter(nil).Convert(`<p>Caf&eacute; &amp; <a href="https://e.com/?q=a&amp;r=b">Tom &amp; Jerry</a></p>`)
	require.True(t, ok)
	require.Equal(t, "\nCafé & <a href=\"https://e.com/?q=a&r=b\">Tom & Jerry</a>\n\n", res.HTML)
	require.Equal(t, "\nCafé & [Tom & Jerry](https://e.com/?q=a&r=b)\n\n", res.Markdown)
	require.Equal(t, "\nCafé & Tom & Jerry (https://e.com/?q=a&r=b)\n\n", res.Raw)
}

func TestConvertFormat(t *testing.T) {
	c := NewConverter(nil)
	out, ok := c.ConvertFormat(`<a href="https://e.com">e</a>`, Slack)
	require.True(t, ok)
	require.Equal(t, "<https://e.com|e>", out)

	_, ok = c.ConvertFormat(`<a href="https://e.com">e</a>`, Format("pdf"))
	require.False(t, ok)
}

// countMarkdownLinks parses md with goldmark and counts the resolved link
// nodes, reference-style links included.
func countMarkdownLinks(t *testing.T, md string) []string {
	t.Helper()
	src := []byte(md)
	root := goldmark.New().Parser().Parse(text.NewReader(src))
	var dests []string
	err := gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if link, ok := n.(*gmast.Link); ok && entering {
			dests = append(dests, string(link.Destination))
		}
		return gmast.WalkContinue, nil
	})
	require.NoError(t, err)
	return dests
}

func TestConvert_MarkdownOutputsParse(t *testing.T) {
	in := `<div>See <a href="https://a.example/docs">the docs</a>, ` +
		`<a href="https://b.example">b</a></div><p><a href="https://c.example"></a></p>`
	res, ok := NewConverter(nil).Convert(in)
	require.True(t, ok)

	var manifest []model.Link
	require.NoError(t, json.Unmarshal([]byte(res.JSON), &manifest))

	want := make([]string, 0, len(manifest))
	for _, l := range manifest {
		want = append(want, l.URL)
	}
	require.Equal(t, want, countMarkdownLinks(t, res.Markdown))
	require.Equal(t, want, countMarkdownLinks(t, res.RefMarkdown))
}
