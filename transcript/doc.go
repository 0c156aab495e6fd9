// Package transcript parses speaker-labeled lecture transcripts.
//
// Core types:
//   - Transcript: An ordered list of statements extracted from a file
//   - Statement: A single speaker's contribution
//   - Parser: Line-oriented transcript reader
//
// Example usage:
//
//	parser := transcript.NewParser()
//	t, err := parser.Parse("lecture.txt")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(t.FullText())
package transcript
