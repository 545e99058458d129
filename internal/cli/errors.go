package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tengjizhang/linkconv/internal/store"
)

const (
	exitInvalidInput = 2
	exitNotFound     = 3
	exitInternal     = 1
)

func ErrorExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, store.ErrInvalidInput):
		return exitInvalidInput
	case errors.Is(err, store.ErrNotFound):
		return exitNotFound
	default:
		if isUsageError(err) {
			return exitInvalidInput
		}
		return exitInternal
	}
}

func FormatError(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		return fmt.Sprintf("Error [invalid-input]: %v", err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Sprintf("Error [not-found]: %v", err)
	default:
		if isUsageError(err) {
			return fmt.Sprintf("Error [invalid-input]: %v", err)
		}
		return fmt.Sprintf("Error [internal]: %v", err)
	}
}

// isUsageError matches errors raised by flag and argument parsing, which
// carry no sentinel.
func isUsageError(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, marker := range []string{
		"invalid id",
		"invalid output format",
		"unknown flag",
		"unknown command",
		"required flag",
		"accepts ",
		"invalid argument",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(os.Stderr, FormatError(err))
}
