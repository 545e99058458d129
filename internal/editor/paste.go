package editor

import (
	"bytes"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark"

	"github.com/tengjizhang/linkconv/internal/markup"
)

var newlineReplacer = strings.NewReplacer("\r\n", "<br>", "\r", "<br>", "\n", "<br>")

// PasteHTML returns markup with pasted HTML appended as is.
func PasteHTML(current, pasted string) string {
	return current + pasted
}

// PasteText returns markup with plain text appended. The text is escaped
// and every line break becomes a <br>.
func PasteText(current, pasted string) string {
	return current + newlineReplacer.Replace(html.EscapeString(pasted))
}

// ImportMarkdown renders Markdown to editor markup.
func ImportMarkdown(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.New().Convert(source, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// CharCount is the number of characters the editor displays for markup.
func CharCount(m string) int {
	return utf8.RuneCountInString(markup.VisibleText(m))
}

// FormatCharCount renders a character count the way the editor footer does.
func FormatCharCount(n int) string {
	return fmt.Sprintf("%d characters", n)
}
