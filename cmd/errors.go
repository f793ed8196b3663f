package cmd

import "fmt"

// NoTemplatesError indicates that the service selector matched nothing in the
// loaded template library.
type NoTemplatesError struct {
	Selector string
}

func (e *NoTemplatesError) Error() string {
	return fmt.Sprintf("no service template found matching %q", e.Selector)
}

// InterruptedError signals that the scan was aborted by a user signal before
// all tasks completed.
type InterruptedError struct {
	Signal string
}

func (e *InterruptedError) Error() string {
	if e.Signal != "" {
		return fmt.Sprintf("scan interrupted by %s", e.Signal)
	}
	return "scan interrupted by user"
}
