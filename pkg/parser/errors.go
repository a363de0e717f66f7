package parser

import (
	"errors"
	"fmt"
)

var ErrUnrecognizedFormat = errors.New("unrecognized format")

// FormatError is returned when no parser accepts a report, or when a forced
// format does not match the file. It is fatal for that file.
type FormatError struct {
	Source string
	Format Format // empty when detection was automatic
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	msg := e.Msg
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Format != "" {
		return fmt.Sprintf("format error in %s (%s): %s", e.Source, e.Format, msg)
	}
	return fmt.Sprintf("format error in %s: %s", e.Source, msg)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
