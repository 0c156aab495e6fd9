package query

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/lektorhq/lektor/session"
)

// RunInteractive runs the blocking read-eval loop: read a question, answer
// it, record the exchange in sess, repeat. Blank input is ignored. The loop
// ends on end of input or when ctx is canceled; the caller persists the
// session afterwards. A query failure aborts the loop and is returned.
func RunInteractive(ctx context.Context, e *Engine, sess *session.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "\nFragen-Modus gestartet. Drücken Sie Ctrl+C zum Beenden.")
	fmt.Fprintln(out, "Stellen Sie Ihre Fragen zum Transkript:")
	fmt.Fprintln(out)

	// Reading happens on its own goroutine so an interrupt is not stuck
	// behind a blocking console read.
	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
		close(lines)
	}()

	for {
		fmt.Fprint(out, "> ")

		select {
		case <-ctx.Done():
			fmt.Fprintln(out, "\n\nFragen-Modus beendet.")
			return nil

		case line, ok := <-lines:
			if !ok {
				if err := <-scanErr; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				fmt.Fprintln(out, "\n\nFragen-Modus beendet.")
				return nil
			}

			question := strings.TrimSpace(line)
			if question == "" {
				continue
			}

			answer, err := e.Query(ctx, question)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "\n%s\n\n", answer)
			sess.Record(question, answer)
		}
	}
}
