package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is understands both wrap chains and marks.
func Is(err, reference error) bool {
	return cr.Is(err, reference)
}

// Tag returns sentinel with a stack trace and cause attached as secondary detail.
// The standard errors.Is matches the sentinel; the cause only shows in verbose output.
func Tag(sentinel, cause error) error {
	tagged := cr.WithStack(sentinel)
	if cause == nil {
		return tagged
	}
	return cr.WithSecondaryError(tagged, cause)
}

func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}
