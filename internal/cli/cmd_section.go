package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/editor"
	"github.com/tengjizhang/linkconv/internal/markup"
	"github.com/tengjizhang/linkconv/internal/store"
)

func newSectionCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "section",
		Aliases: []string{"sections"},
		Short:   "Manage editor sections",
	}
	cmd.AddCommand(newSectionNewCmd(getApp, getOutput))
	cmd.AddCommand(newSectionListCmd(getApp, getOutput))
	cmd.AddCommand(newSectionShowCmd(getApp, getOutput))
	cmd.AddCommand(newSectionSetCmd(getApp, getOutput))
	cmd.AddCommand(newSectionPasteCmd(getApp, getOutput))
	cmd.AddCommand(newSectionClearCmd(getApp, getOutput))
	cmd.AddCommand(newSectionRemoveCmd(getApp, getOutput))
	return cmd
}

func newSectionNewCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var file string
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Create a section, optionally from a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}

			content := ""
			if file != "" {
				data, err := readSource(cmd, file)
				if err != nil {
					return err
				}
				content = string(data)
			}
			if asMarkdown {
				if content, err = editor.ImportMarkdown([]byte(content)); err != nil {
					return err
				}
			}

			section, err := s.CreateSection(cmd.Context(), content)
			if err != nil {
				return fmt.Errorf("create section: %w", err)
			}
			app.logger.Debug("Created section", "section_id", section.ID, "markdown", asMarkdown)
			return writeSectionResult(cmd, app, getOutput(), section, fmt.Sprintf("Created section %d.", section.ID))
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read initial markup from a file (- for stdin)")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Treat the input as Markdown and import it as rich text")
	return cmd
}

func newSectionListCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List sections",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			sections, err := s.ListSections(cmd.Context(), store.SectionListOptions{Limit: limit})
			if err != nil {
				return fmt.Errorf("list sections: %w", err)
			}

			t := app.converter.Transformer()
			summaries := make([]SectionSummary, 0, len(sections))
			byID := make(map[int64]Section, len(sections))
			for _, section := range sections {
				summaries = append(summaries, editor.Summarize(t, section))
				byID[section.ID] = section
			}

			switch getOutput() {
			case OutputJSON:
				return writeJSON(cmd.OutOrStdout(), summaries)
			case OutputWide:
				writeSectionsTable(cmd.OutOrStdout(), summaries, byID, true)
			default:
				writeSectionsTable(cmd.OutOrStdout(), summaries, byID, false)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 100, "Result limit")
	return cmd
}

func newSectionShowCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a section's markup and character count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
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
			return writeSectionResult(cmd, app, getOutput(), section, "")
		},
	}
}

func newSectionSetCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var file string
	var asMarkdown bool

	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Replace a section's markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			data, err := readSource(cmd, file)
			if err != nil {
				return err
			}
			content := string(data)
			if asMarkdown {
				if content, err = editor.ImportMarkdown(data); err != nil {
					return err
				}
			}
			section, err := s.UpdateSectionMarkup(cmd.Context(), id, content)
			if err != nil {
				return fmt.Errorf("update section: %w", err)
			}
			return writeSectionResult(cmd, app, getOutput(), section, fmt.Sprintf("Updated section %d.", id))
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Read markup from a file (- for stdin)")
	cmd.Flags().BoolVar(&asMarkdown, "markdown", false, "Treat the input as Markdown and import it as rich text")
	return cmd
}

func newSectionPasteCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var file string
	var asHTML bool

	cmd := &cobra.Command{
		Use:   "paste <id>",
		Short: "Append pasted content to a section",
		Long:  "Append pasted content to a section. HTML is inserted as is with --html; plain text is escaped and its line breaks become <br>.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			data, err := readSource(cmd, file)
			if err != nil {
				return err
			}
			pasted := string(data)
			section, err := s.ModifySection(cmd.Context(), id, func(current string) (string, error) {
				if asHTML {
					return editor.PasteHTML(current, pasted), nil
				}
				return editor.PasteText(current, pasted), nil
			})
			if err != nil {
				return fmt.Errorf("paste into section: %w", err)
			}
			return writeSectionResult(cmd, app, getOutput(), section, fmt.Sprintf("Pasted into section %d.", id))
		},
	}

	cmd.Flags().StringVar(&file, "file", "-", "Read pasted content from a file (- for stdin)")
	cmd.Flags().BoolVar(&asHTML, "html", false, "Paste content as HTML")
	return cmd
}

func newSectionClearCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear <id>",
		Short: "Clear a section's markup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, s, err := requireStore(getApp)
			if err != nil {
				return err
			}
			id, err := parseSectionID(args[0])
			if err != nil {
				return err
			}
			section, err := s.ModifySection(cmd.Context(), id, func(current string) (string, error) {
				if !force && !markup.IsBlank(current) {
					return "", fmt.Errorf("%w: section %d is not empty; pass --force to clear it", store.ErrInvalidInput, id)
				}
				return "", nil
			})
			if err != nil {
				return fmt.Errorf("clear section: %w", err)
			}
			return writeSectionResult(cmd, app, getOutput(), section, fmt.Sprintf("Editor %d cleared.", id))
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Clear without confirmation even when the section has text")
	return cmd
}

func newSectionRemoveCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a section",
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
			if err := s.DeleteSection(cmd.Context(), id); err != nil {
				return fmt.Errorf("remove section: %w", err)
			}
			if getOutput() == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), RemoveSectionResponse{RemovedSectionID: id})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed section %d.\n", id)
			return nil
		},
	}
}

// writeSectionResult prints a section with its character count. status,
// when set, is printed first in table output.
func writeSectionResult(cmd *cobra.Command, app *App, output OutputFormat, section Section, status string) error {
	sum := editor.Summarize(app.converter.Transformer(), section)
	out := cmd.OutOrStdout()
	if output == OutputJSON {
		return writeJSON(out, SectionDetailResponse{
			Section:    section,
			Characters: sum.Characters,
			Links:      sum.Links,
		})
	}
	if status != "" {
		fmt.Fprintln(out, status)
	}
	if section.Markup != "" {
		fmt.Fprintln(out, section.Markup)
	}
	fmt.Fprintln(out, editor.FormatCharCount(sum.Characters))
	if output == OutputWide {
		fmt.Fprintf(out, "links: %d\ncreated: %s\nupdated: %s\n", sum.Links, formatDate(&section.CreatedAt), humanAgo(&section.UpdatedAt))
	}
	return nil
}
