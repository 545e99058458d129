package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/store"
)

func newConvertCmd(getApp func() *App, getOutput func() OutputFormat) *cobra.Command {
	var format string
	var sectionID int64

	cmd := &cobra.Command{
		Use:   "convert [file|-]",
		Short: "Convert markup from a file, stdin or a section into every link format",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := requireApp(getApp)
			if err != nil {
				return err
			}

			var src string
			if sectionID > 0 {
				if len(args) > 0 {
					return fmt.Errorf("%w: use either a file or --section", store.ErrInvalidInput)
				}
				s, err := app.Store()
				if err != nil {
					return err
				}
				section, err := s.GetSection(cmd.Context(), sectionID)
				if err != nil {
					return fmt.Errorf("get section: %w", err)
				}
				src = section.Markup
			} else {
				path := ""
				if len(args) > 0 {
					path = args[0]
				}
				data, err := readSource(cmd, path)
				if err != nil {
					return err
				}
				src = string(data)
			}

			var only emit.Format
			if format != "" {
				if only, err = parseFormatFlag(format); err != nil {
					return err
				}
			}
			return writeConversion(cmd, app, getOutput(), src, sectionID, only)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Only print one format: html, markdown, bbcode, raw, slack, json, refmd")
	cmd.Flags().Int64Var(&sectionID, "section", 0, "Convert a stored section instead of a file")
	return cmd
}

// writeConversion prints every format, or only one when only is set.
func writeConversion(cmd *cobra.Command, app *App, output OutputFormat, src string, sectionID int64, only emit.Format) error {
	out := cmd.OutOrStdout()

	if only != "" {
		text, ok := app.convertFormat(src, sectionID, only)
		if output == OutputJSON {
			return writeJSON(out, FormatOutputResponse{Format: only, Empty: !ok, Output: text})
		}
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), placeholder)
			return nil
		}
		fmt.Fprintln(out, text)
		return nil
	}

	result, ok := app.convert(src, sectionID)
	switch output {
	case OutputJSON:
		if !ok {
			return writeJSON(out, map[string]bool{"empty": true})
		}
		return writeJSON(out, ConvertResponse{Formats: result.Outputs(), Links: result.Links})
	default:
		if !ok {
			fmt.Fprintln(cmd.ErrOrStderr(), placeholder)
			return nil
		}
		writeResultBlocks(out, result, output == OutputWide)
	}
	return nil
}
