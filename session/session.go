package session

import "time"

// QA is a single question-answer exchange.
type QA struct {
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// Session captures one interactive run against a transcript: which file was
// discussed, when the run started, every exchange, and the generated summary.
type Session struct {
	TranscriptPath string    `json:"transcript"`
	StartTime      time.Time `json:"start_time"`
	Questions      []QA      `json:"questions"`
	Summary        string    `json:"summary"`
}

// New starts a session for the given transcript and summary.
func New(transcriptPath, summary string) *Session {
	return &Session{
		TranscriptPath: transcriptPath,
		StartTime:      time.Now(),
		Questions:      []QA{},
		Summary:        summary,
	}
}

// Record appends a question-answer pair stamped with the current time.
func (s *Session) Record(question, answer string) {
	s.Questions = append(s.Questions, QA{
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now(),
	})
}
