package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/tengjizhang/linkconv/internal/emit"
)

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeResultBlocks prints every format under a header, in display order.
func writeResultBlocks(out io.Writer, result emit.Result, wide bool) {
	for i, f := range emit.Formats {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "== %s ==\n", f)
		fmt.Fprintln(out, result.Output(f))
	}
	if wide {
		fmt.Fprintln(out)
		writeLinksTable(out, result.Links)
	}
}

func writeLinksTable(out io.Writer, links []Link) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTEXT\tURL")
	for i, l := range links {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, compactText(l.Text, 40), l.URL)
	}
	_ = tw.Flush()
}

func writeSectionsTable(out io.Writer, sections []SectionSummary, created map[int64]Section, wide bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	if wide {
		fmt.Fprintln(tw, "ID\tCHARS\tLINKS\tCREATED\tUPDATED\tEXCERPT")
		for _, s := range sections {
			c := created[s.ID].CreatedAt
			u := s.UpdatedAt
			fmt.Fprintf(
				tw,
				"%d\t%d\t%d\t%s\t%s\t%s\n",
				s.ID,
				s.Characters,
				s.Links,
				formatDate(&c),
				humanAgo(&u),
				fallback(s.Excerpt, "(empty)"),
			)
		}
	} else {
		fmt.Fprintln(tw, "ID\tCHARS\tLINKS\tUPDATED\tEXCERPT")
		for _, s := range sections {
			u := s.UpdatedAt
			fmt.Fprintf(
				tw,
				"%d\t%d\t%d\t%s\t%s\n",
				s.ID,
				s.Characters,
				s.Links,
				humanAgo(&u),
				compactText(fallback(s.Excerpt, "(empty)"), 40),
			)
		}
	}
	_ = tw.Flush()
}

func writePreviewTable(out io.Writer, previews []LinkPreview) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTITLE\tURL")
	for i, p := range previews {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, compactText(p.Title, 48), p.URL)
	}
	_ = tw.Flush()
}
