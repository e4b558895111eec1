// Package faults defines the error taxonomy shared across the CLI and the
// placement engine. Errors are tagged with sentinel markers so callers can
// classify them with errors.Is without parsing messages.
package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("configuration error")
	ErrValidation    = errors.New("validation error")
	ErrLocked        = errors.New("destination locked")
	ErrIO            = errors.New("io error")
)

// Wrap builds an error that carries component and operation context while
// tagging it with the provided marker for later classification. The marker
// should be one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrIO
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// ExitCode maps an error to the process exit status the CLI should use:
// 2 for configuration and lock failures the user must fix before retrying,
// 1 for everything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrConfiguration), errors.Is(err, ErrValidation), errors.Is(err, ErrLocked):
		return 2
	default:
		return 1
	}
}

func IsConfiguration(err error) bool { return errors.Is(err, ErrConfiguration) }

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsLocked(err error) bool { return errors.Is(err, ErrLocked) }

func IsIO(err error) bool { return errors.Is(err, ErrIO) }

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
