// Package markup normalizes editor markup and finds the anchors in it.
//
// Two Transformer implementations exist. RegexTransformer scans with
// patterns and is the default; TreeTransformer parses the markup into a
// node tree first. Emitters only depend on the interface, so either can
// back a conversion.
package markup

import (
	"fmt"
	"strings"

	"github.com/tengjizhang/linkconv/internal/model"
)

type Link = model.Link

// Transformer turns raw editor markup into normalized markup and reports
// or rewrites the anchors it contains.
//
// Implementations must be safe for concurrent use and keep no scan state
// between calls: every call starts from the beginning of its input.
type Transformer interface {
	// Name is the parser name the transformer is registered under.
	Name() string
	// Normalize collapses block markup to newlines, drops target="_blank"
	// and removes every tag except anchors.
	Normalize(markup string) string
	// Links returns the anchors of normalized markup in document order.
	Links(normalized string) []Link
	// ReplaceLinks substitutes each anchor with replace(link). replace is
	// called once per anchor, in document order.
	ReplaceLinks(normalized string, replace func(Link) string) string
}

const (
	ParserRegex = "regex"
	ParserTree  = "tree"
)

// New returns the transformer registered under name.
func New(name string) (Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ParserRegex:
		return RegexTransformer{}, nil
	case ParserTree:
		return TreeTransformer{}, nil
	default:
		return nil, fmt.Errorf("unknown parser %q (expected regex|tree)", name)
	}
}
