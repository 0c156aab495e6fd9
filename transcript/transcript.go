package transcript

import "strings"

// TeacherSpeaker is the label the transcripts use for the teacher.
// Statements from any other speaker belong to students.
const TeacherSpeaker = "TEACHER"

// Statement is a single utterance. Immutable once created; ordering within
// a transcript is chronological.
type Statement struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript is an ordered sequence of statements. A successfully parsed
// transcript contains at least one statement.
type Transcript struct {
	Statements []Statement `json:"statements"`
}

// FullText reconstructs the transcript as speaker-labeled lines in the
// original order, one statement per line.
func (t *Transcript) FullText() string {
	lines := make([]string, len(t.Statements))
	for i, s := range t.Statements {
		lines[i] = s.Speaker + ": " + s.Text
	}
	return strings.Join(lines, "\n")
}

// StudentQuestions returns the statements spoken by anyone but the teacher
// that contain a literal question mark, preserving order. This is a plain
// substring check, not question detection. Returned texts are trimmed of
// surrounding whitespace.
func (t *Transcript) StudentQuestions() []Statement {
	var questions []Statement
	for _, s := range t.Statements {
		if s.Speaker != TeacherSpeaker && strings.Contains(s.Text, "?") {
			questions = append(questions, Statement{
				Speaker: s.Speaker,
				Text:    strings.TrimSpace(s.Text),
			})
		}
	}
	return questions
}
