package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parsing errors.
var (
	// ErrTextBeforeSpeaker indicates statement text appeared before any
	// speaker label.
	ErrTextBeforeSpeaker = errors.New("text found before speaker label")

	// ErrNoStatements indicates the input produced no statements.
	ErrNoStatements = errors.New("no statements found in transcript")
)

// Parser reads speaker-labeled transcript text.
//
// The format is line oriented: a trimmed line ending in ':' names the
// speaker of the following lines, every other non-blank line is statement
// text. Text lines accumulate until the next label and are joined by single
// spaces.
type Parser struct{}

// NewParser creates a transcript parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads and parses the transcript file at path.
func (p *Parser) Parse(path string) (*Transcript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	return p.ParseReader(f)
}

// ParseReader parses transcript text from r.
//
// It fails with ErrTextBeforeSpeaker when text precedes the first label and
// with ErrNoStatements when nothing was extracted. A label directly followed
// by another label contributes no statement.
func (p *Parser) ParseReader(r io.Reader) (*Transcript, error) {
	var (
		statements []Statement
		speaker    string
		text       []string
	)

	flush := func() {
		if speaker != "" && len(text) > 0 {
			statements = append(statements, Statement{
				Speaker: speaker,
				Text:    strings.Join(text, " "),
			})
		}
		text = nil
	}

	scanner := bufio.NewScanner(r)
	// Long monologues exceed the default per-line limit.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		trimmed := strings.TrimSpace(scanner.Text())
		if trimmed == "" {
			continue
		}

		if strings.HasSuffix(trimmed, ":") {
			flush()
			speaker = strings.TrimSuffix(trimmed, ":")
			continue
		}

		if speaker == "" {
			return nil, fmt.Errorf("line %d: %w", line, ErrTextBeforeSpeaker)
		}
		text = append(text, trimmed)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	flush()

	if len(statements) == 0 {
		return nil, ErrNoStatements
	}
	return &Transcript{Statements: statements}, nil
}
