package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/export"
)

func newExportCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var format string
	var dir string

	cmd := &cobra.Command{
		Use:   "export <section-id>",
		Short: "Write one format of a section to links-<id>.<ext>",
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
			f, err := parseFormatFlag(format)
			if err != nil {
				return err
			}
			section, err := s.GetSection(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get section: %w", err)
			}

			resp := ExportResponse{SectionID: id, Format: f}
			result, ok := app.convert(section.Markup, id)
			if ok {
				if dir == "" {
					dir = app.cfg.ExportDir
				}
				w, err := export.New(dir)
				if err != nil {
					return err
				}
				path, err := w.Write(id, f, result.Output(f))
				if err == nil {
					resp.Path = path
					app.logger.Debug("Exported section", "section_id", id, "format", f, "path", path)
				} else if !errors.Is(err, export.ErrNothingToDownload) {
					return err
				}
			}
			resp.Empty = resp.Path == ""

			if getOutput() == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			if resp.Empty {
				fmt.Fprintln(cmd.ErrOrStderr(), export.ErrNothingToDownload.Error())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s\n", resp.Path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "markdown", "Format to export: html, markdown, bbcode, raw, slack, json, refmd")
	cmd.Flags().StringVar(&dir, "dir", "", "Directory to write to (defaults to export_dir)")
	return cmd
}
