package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTransient marks per-file failures (vanished file, permission denied,
	// unreadable metadata). The classify path logs these and moves on.
	ErrTransient = errors.New("transient failure")
	// ErrConfiguration marks setup failures that must stop the process before
	// it starts watching (missing watch root, uncreatable destination root).
	ErrConfiguration = errors.New("configuration error")
	// ErrValidation marks invalid inputs handed to a component.
	ErrValidation = errors.New("validation error")
	// ErrUnsupported marks capabilities unavailable in this build or
	// environment, detected once at startup.
	ErrUnsupported = errors.New("unsupported capability")
)

// Wrap builds an error message that includes component context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether an error should abort startup rather than be
// skipped by the sweep or watch loop.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConfiguration) || errors.Is(err, ErrValidation)
}

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
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
