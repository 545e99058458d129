package markup

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegexNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blocks become newlines",
			in:   `<div>one</div><p>two</p>three<br>four<br/>`,
			want: "\none\n\n\ntwo\n\nthree\nfour\n",
		},
		{
			name: "inline tags removed at any depth",
			in:   `<span class="x"><b><i>deep</i></b></span> text`,
			want: "deep text",
		},
		{
			name: "pre is not a paragraph",
			in:   `<pre>code</pre>`,
			want: "code",
		},
		{
			name: "target blank removed in every spelling",
			in:   `<a href="https://a.example" target="_blank">a</a><a target='_blank' href="https://b.example">b</a><a href="https://c.example" TARGET=_blank>c</a>`,
			want: `<a href="https://a.example">a</a><a href="https://b.example">b</a><a href="https://c.example">c</a>`,
		},
		{
			name: "anchor keeps only href",
			in:   `<a class="btn" href="https://e.com" rel="noopener">go</a>`,
			want: `<a href="https://e.com">go</a>`,
		},
		{
			name: "single quoted href kept",
			in:   `<a href='https://e.com'>go</a>`,
			want: `<a href='https://e.com'>go</a>`,
		},
		{
			name: "close tags that only start with a are removed",
			in:   `<abbr>x</abbr><address>y</address>`,
			want: "xy",
		},
		{
			name: "unterminated tag left as text",
			in:   `Hello <b world`,
			want: `Hello <b world`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, RegexTransformer{}.Normalize(tt.in))
		})
	}
}

func TestRegexLinks(t *testing.T) {
	in := `<A HREF="https://one.example/?a=1&amp;b=2">One &amp; only</A> and ` +
		`<a href='https://two.example'>  </a> then ` +
		`<a href="https://one.example/?a=1&amp;b=2">One &amp; only</a>`
	links := RegexTransformer{}.Links(in)
	require.Equal(t, []Link{
		{URL: "https://one.example/?a=1&b=2", Text: "One & only"},
		{URL: "https://two.example", Text: "https://two.example"},
		{URL: "https://one.example/?a=1&b=2", Text: "One & only"},
	}, links)
}

func TestRegexLinksMalformed(t *testing.T) {
	for _, in := range []string{
		`<a href="https://e.com">never closed`,
		`<a href=https://e.com>unquoted</a>`,
		`<a href="">empty</a>`,
		`<<<>>> <a`,
	} {
		require.NotPanics(t, func() {
			require.Empty(t, RegexTransformer{}.Links(in), in)
		})
	}
}

func TestRegexReplaceLinksOrder(t *testing.T) {
	in := `a <a href="https://1.example">x</a> b <a href="https://2.example">y</a> c`
	var seen []string
	out := RegexTransformer{}.ReplaceLinks(in, func(l Link) string {
		seen = append(seen, l.URL)
		return "[" + l.Text + "]"
	})
	require.Equal(t, "a [x] b [y] c", out)
	require.Equal(t, []string{"https://1.example", "https://2.example"}, seen)
}

func TestRegexScansStartFresh(t *testing.T) {
	in := `<a href="https://1.example">x</a><a href="https://2.example">y</a>`
	tr := RegexTransformer{}
	first := tr.Links(in)
	second := tr.Links(in)
	require.Len(t, first, 2)
	require.Equal(t, first, second)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := tr.Links(in); len(got) != 2 {
				t.Errorf("concurrent scan found %d links", len(got))
			}
		}()
	}
	wg.Wait()
}

func TestVisibleText(t *testing.T) {
	require.Equal(t, "\nHi & bye\n", VisibleText(`<div>Hi <b>&amp;</b> bye</div>`))
	require.True(t, IsBlank(`<div><br></div>&nbsp;`))
	require.True(t, IsBlank(`<a href="https://e.com"></a>`))
	require.False(t, IsBlank(`<p>x</p>`))
}

func TestNew(t *testing.T) {
	tr, err := New("")
	require.NoError(t, err)
	require.IsType(t, RegexTransformer{}, tr)
	require.Equal(t, ParserRegex, tr.Name())

	tr, err = New("Tree")
	require.NoError(t, err)
	require.IsType(t, TreeTransformer{}, tr)
	require.Equal(t, ParserTree, tr.Name())

	_, err = New("dom")
	require.Error(t, err)
}
