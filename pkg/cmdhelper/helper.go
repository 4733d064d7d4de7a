// Package cmdhelper provides common helpers for building cli.Command trees.
package cmdhelper

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"
)

// ActionFunc is a function type to set *cli.Command Before/Action.
type ActionFunc func(ctx context.Context, cmd *cli.Command) error

// ExactArgs returns an error if there are not exactly n args.
func ExactArgs(n int) ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		args := cmd.Args()
		if args.Len() != n {
			return fmt.Errorf("accepts %d arg(s), received %d", n, args.Len())
		}
		return nil
	}
}

// Fprintf is a wrapper around fmt.Fprintf that appends a trailing newline
// if the format string doesn't already end with one, and suppresses the
// write error (as is conventional for CLI output helpers).
func Fprintf(w io.Writer, format string, args ...any) {
	if format[len(format)-1] != '\n' {
		format += "\n"
	}
	_, _ = fmt.Fprintf(w, format, args...)
}
