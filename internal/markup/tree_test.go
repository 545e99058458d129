package markup

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func transformers() map[string]Transformer {
	return map[string]Transformer{
		ParserRegex: RegexTransformer{},
		ParserTree:  TreeTransformer{},
	}
}

func TestTransformersAgreeOnNormalize(t *testing.T) {
	in := `<div>Hello <b>world</b></div><p>Second <a href="https://e.com" target="_blank" class="x">link</a></p>`
	want := "\nHello world\n\n\nSecond <a href=\"https://e.com\">link</a>\n\n"
	for name, tr := range transformers() {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, want, tr.Normalize(in))
		})
	}
}

func TestTransformersAgreeOnLinks(t *testing.T) {
	in := `<p>See <a href="https://a.example/?x=1&amp;y=2">A &amp; B</a></p>` +
		`<div><a href="https://e.com"></a> and <a href="https://a.example/?x=1&amp;y=2">A &amp; B</a></div>`
	want := []Link{
		{URL: "https://a.example/?x=1&y=2", Text: "A & B"},
		{URL: "https://e.com", Text: "https://e.com"},
		{URL: "https://a.example/?x=1&y=2", Text: "A & B"},
	}
	for name, tr := range transformers() {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, want, tr.Links(tr.Normalize(in)))
		})
	}
}

func TestTreeFindsAnchorsSpanningLines(t *testing.T) {
	tr := TreeTransformer{}
	in := `<a title="t" href="https://e.com">first<br>second</a>`
	links := tr.Links(tr.Normalize(in))
	require.Len(t, links, 1)
	require.Equal(t, "https://e.com", links[0].URL)
	require.Equal(t, "first\nsecond", links[0].Text)

	require.Empty(t, RegexTransformer{}.Links(RegexTransformer{}.Normalize(in)))
}

func TestTreeReplaceLinks(t *testing.T) {
	tr := TreeTransformer{}
	norm := tr.Normalize(`Tom &amp; <a href="https://1.example">one</a>, <a name="x">plain</a>`)
	n := 0
	out := tr.ReplaceLinks(norm, func(l Link) string {
		n++
		return "{" + l.Text + "}"
	})
	require.Equal(t, 1, n)
	require.Equal(t, "Tom &amp; {one}, plain", out)
}

func TestTreeToleratesMalformedMarkup(t *testing.T) {
	tr := TreeTransformer{}
	for _, in := range []string{`<a href="https://e.com">open`, `</p></div><<`, `<div><p>x</div>`} {
		require.NotPanics(t, func() {
			_ = tr.Links(tr.Normalize(in))
		})
	}
}
