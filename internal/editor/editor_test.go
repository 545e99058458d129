package editor

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := store.OpenDB(filepath.Join(t.TempDir(), "linkconv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return store.NewStore(db)
}

func markupRegex() markup.Transformer { return markup.RegexTransformer{} }

func TestValidateURL(t *testing.T) {
	for _, ok := range []string{"https://example.com", "http://x.y/path?q=1", "mailto:a@b.c", "file:///tmp/a"} {
		_, err := ValidateURL(ok)
		require.NoError(t, err, ok)
	}
	for _, bad := range []string{"", "   ", "example.com", "not a url", "http://", "://missing"} {
		_, err := ValidateURL(bad)
		require.ErrorIs(t, err, ErrInvalidURL, bad)
		require.ErrorIs(t, err, store.ErrInvalidInput, bad)
	}
}

func TestInsertLinkWrapsRange(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	section, err := s.CreateSection(ctx, "Hello world!")
	require.NoError(t, err)

	updated, err := InsertLink(ctx, s, EditContext{SectionID: section.ID, Start: 6, End: 11}, "https://example.com/?a=1&b=2")
	require.NoError(t, err)
	require.Equal(t, `Hello <a href="https://example.com/?a=1&amp;b=2">world</a>!`, updated.Markup)

	result, ok := emit.NewConverter(nil).Convert(updated.Markup)
	require.True(t, ok)
	require.Equal(t, "Hello [world](https://example.com/?a=1&b=2)!", result.Markdown)
}

func TestInsertLinkRejectsWithoutMutation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	section, err := s.CreateSection(ctx, `<p>Go <a href="https://go.dev">site</a> docs</p>`)
	require.NoError(t, err)

	tests := []struct {
		name string
		ec   EditContext
		url  string
		want error
	}{
		{name: "invalid url", ec: EditContext{SectionID: section.ID, Start: 3, End: 5}, url: "go.dev", want: ErrInvalidURL},
		{name: "empty selection", ec: EditContext{SectionID: section.ID, Start: 4, End: 4}, url: "https://go.dev", want: ErrNoSelection},
		{name: "crosses tag", ec: EditContext{SectionID: section.ID, Start: 0, End: 5}, url: "https://go.dev", want: ErrInvalidRange},
		{name: "inside anchor", ec: EditContext{SectionID: section.ID, Start: 31, End: 35}, url: "https://go.dev", want: ErrInvalidRange},
		{name: "out of bounds", ec: EditContext{SectionID: section.ID, Start: 3, End: 500}, url: "https://go.dev", want: ErrInvalidRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := InsertLink(ctx, s, tt.ec, tt.url)
			require.ErrorIs(t, err, tt.want)
			require.ErrorIs(t, err, store.ErrInvalidInput)

			got, err := s.GetSection(ctx, section.ID)
			require.NoError(t, err)
			require.Equal(t, section.Markup, got.Markup)
		})
	}

	_, err = InsertLink(ctx, s, EditContext{SectionID: 999, Start: 0, End: 1}, "https://go.dev")
	require.True(t, errors.Is(err, store.ErrNotFound))
}

func TestFindTextSkipsMarkup(t *testing.T) {
	m := `<a href="https://docs.example">docs</a> and docs`
	start, end, err := FindText(m, "docs")
	require.NoError(t, err)
	require.Equal(t, "docs", m[start:end])
	require.Equal(t, len(m)-4, start)

	_, _, err = FindText(m, "missing")
	require.ErrorIs(t, err, ErrTextNotFound)

	_, _, err = FindText(m, "")
	require.ErrorIs(t, err, ErrNoSelection)
}

func TestWrapRangeRejectsSplitRune(t *testing.T) {
	_, err := WrapRange("héllo", 2, 4, "https://e.com")
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestWrapRangeRejectsSplitCharRef(t *testing.T) {
	m := "Tom &amp; Jerry &am"
	for _, r := range [][2]int{{6, 15}, {0, 6}, {5, 9}, {10, 18}} {
		_, err := WrapRange(m, r[0], r[1], "https://e.com")
		require.ErrorIs(t, err, ErrInvalidRange, "range %v", r)
	}

	got, err := WrapRange(m, 4, 9, "https://e.com")
	require.NoError(t, err)
	require.Equal(t, `Tom <a href="https://e.com">&amp;</a> Jerry &am`, got)

	start, end, err := FindText(m, "amp; Jerry")
	require.Error(t, err)
	require.Zero(t, start+end)
}

func TestPaste(t *testing.T) {
	require.Equal(t, "a<b>bold</b>", PasteHTML("a", "<b>bold</b>"))
	require.Equal(t, "a<br>line 1<br>1 &lt; 2", PasteText("a<br>", "line 1\r\n1 < 2"))
}

func TestImportMarkdown(t *testing.T) {
	got, err := ImportMarkdown([]byte("Read [the docs](https://go.dev/doc).\n"))
	require.NoError(t, err)
	require.Equal(t, `<p>Read <a href="https://go.dev/doc">the docs</a>.</p>`, got)

	result, ok := emit.NewConverter(nil).Convert(got)
	require.True(t, ok)
	require.Len(t, result.Links, 1)
	require.Equal(t, "the docs", result.Links[0].Text)
}

func TestCharCount(t *testing.T) {
	require.Equal(t, 0, CharCount(""))
	require.Equal(t, 5, CharCount("<b>héllo</b>"))
	require.Equal(t, 3, CharCount("a&amp;b"))
	require.Equal(t, "12 characters", FormatCharCount(12))
}

func TestPreview(t *testing.T) {
	m := `<div>See <a href="https://a.example" target="_blank">Tom &amp; Jerry</a> and <a href='https://b.example'> </a><a name="x">anchor</a></div>`
	previews := Preview(m)
	require.Len(t, previews, 2)
	require.Equal(t, "Tom & Jerry", previews[0].Title)
	require.Equal(t, "https://a.example", previews[0].URL)
	require.Equal(t, NoTextTitle, previews[1].Title)
	require.Equal(t, "https://b.example", previews[1].URL)

	require.Empty(t, Preview("plain text"))
}

func TestSummarize(t *testing.T) {
	s := store.Section{ID: 7, Markup: `<p>Read <a href="https://a.example">this</a></p><p>and <a href="https://b.example">that</a></p>`}
	sum := Summarize(markupRegex(), s)
	require.Equal(t, int64(7), sum.ID)
	require.Equal(t, 2, sum.Links)
	require.Equal(t, "Read this and that", sum.Excerpt)

	long := store.Section{ID: 1, Markup: strings.Repeat("word ", 30)}
	require.Len(t, []rune(Summarize(markupRegex(), long).Excerpt), excerptRunes)
}
