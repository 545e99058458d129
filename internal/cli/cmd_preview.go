package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/editor"
)

func newPreviewCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "preview <section-id>",
		Short: "Show the links of a section as cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			section, err := s.GetSection(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get section: %w", err)
			}

			previews := editor.Preview(section.Markup)
			switch getOutput() {
			case OutputJSON:
				return writeJSON(cmd.OutOrStdout(), PreviewResponse{SectionID: id, Links: previews})
			default:
				if len(previews) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), editor.NoLinksMessage)
					return nil
				}
				writePreviewTable(cmd.OutOrStdout(), previews)
			}
			return nil
		},
	}
}
