package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/editor"
	"github.com/tengjizhang/linkconv/internal/store"
)

func newLinkCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "link",
		Short: "Edit links in a section",
	}
	cmd.AddCommand(newLinkInsertCmd(getApp, getOutput))
	return cmd
}

func newLinkInsertCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var rawURL string
	var start int
	var end int
	var text string

	cmd := &cobra.Command{
		Use:   "insert <section-id>",
		Short: "Wrap a range of a section's markup in a link",
		Long: "Wrap a range of a section's markup in a link. The range is given either as byte offsets " +
			"with --start/--end or as the first linkable occurrence of --text.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}

			byRange := cmd.Flags().Changed("start") || cmd.Flags().Changed("end")
			if byRange && text != "" {
				return fmt.Errorf("%w: choose either --start/--end or --text", store.ErrInvalidInput)
			}
			ec := editor.EditContext{SectionID: id, Start: start, End: end}
			switch {
			case byRange:
			case text != "":
				section, err := s.GetSection(cmd.Context(), id)
				if err != nil {
					return fmt.Errorf("get section: %w", err)
				}
				if ec.Start, ec.End, err = editor.FindText(section.Markup, text); err != nil {
					return err
				}
			default:
				return editor.ErrNoSelection
			}

			section, err := editor.InsertLink(cmd.Context(), s, ec, rawURL)
			if err != nil {
				return err
			}
			app.logger.Debug("Inserted link", "section_id", id, "start", ec.Start, "end", ec.End)
			return writeSectionResult(cmd, app, getOutput(), section, "Hyperlink added.")
		},
	}

	cmd.Flags().StringVar(&rawURL, "url", "", "Absolute URL of the link")
	cmd.Flags().IntVar(&start, "start", 0, "Byte offset where the selection starts")
	cmd.Flags().IntVar(&end, "end", 0, "Byte offset where the selection ends (exclusive)")
	cmd.Flags().StringVar(&text, "text", "", "Link the first occurrence of this text")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}
