package ui

import (
	stderrors "errors"
	"fmt"
	"io"

	lekerrors "github.com/lektorhq/lektor/errors"
)

// Errorf prints a styled error line.
func Errorf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", ErrorStyle.Render("Error:"), fmt.Sprintf(format, args...))
}

// Successf prints a styled confirmation line.
func Successf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

// Warnf prints a styled warning line.
func Warnf(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, WarnStyle.Render(fmt.Sprintf(format, args...)))
}

// PrintError renders err for the console. Guided errors print their message,
// details, and suggestion on separate lines; anything else prints as a single
// error line.
func PrintError(w io.Writer, err error) {
	var cerr *lekerrors.CLIError
	if !stderrors.As(err, &cerr) {
		Errorf(w, "%v", err)
		return
	}

	Errorf(w, "%s", cerr.Message)
	if cerr.Details != "" {
		fmt.Fprintln(w, DimStyle.Render(cerr.Details))
	}
	if cerr.Suggestion != "" {
		fmt.Fprintf(w, "\n%s\n", cerr.Suggestion)
	}
}
