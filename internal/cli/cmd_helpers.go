package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tengjizhang/linkconv/internal/emit"
	"github.com/tengjizhang/linkconv/internal/store"
)

// placeholder is shown instead of output when there is nothing to convert.
const placeholder = "Click to copy"

func requireApp(getApp func() *App) (*App, error) {
	app := getApp()
	if app == nil {
		return nil, errors.New("app not initialized")
	}
	return app, nil
}

// requireStore returns the app and its opened section store.
func requireStore(getApp func() *App) (*App, *store.Store, error) {
	app, err := requireApp(getApp)
	if err != nil {
		return nil, nil, err
	}
	s, err := app.Store()
	if err != nil {
		return nil, nil, err
	}
	return app, s, nil
}

// readSource reads path, or stdin when path is empty or "-".
func readSource(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: file %s does not exist", store.ErrInvalidInput, path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func parseSectionID(raw string) (int64, error) {
	id, err := parseID(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	return id, nil
}

func parseFormatFlag(raw string) (emit.Format, error) {
	f, err := emit.ParseFormat(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", store.ErrInvalidInput, err)
	}
	return f, nil
}

// convert runs one conversion and logs its shape.
func (a *App) convert(src string, sectionID int64) (emit.Result, bool) {
	start := time.Now()
	result, ok := a.converter.Convert(src)
	a.logger.Debug("Converted markup",
		"section_id", sectionID,
		"parser", a.converter.Transformer().Name(),
		"empty", !ok,
		"links", len(result.Links),
		"duration", time.Since(start),
	)
	return result, ok
}

func (a *App) convertFormat(src string, sectionID int64, f emit.Format) (string, bool) {
	out, ok := a.converter.ConvertFormat(src, f)
	a.logger.Debug("Converted markup", "section_id", sectionID, "format", f, "empty", !ok)
	return out, ok
}
