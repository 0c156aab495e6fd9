package summary

import "github.com/lektorhq/lektor/prompt"

// Summary is the structured result of summarizing a transcript.
type Summary struct {
	// Synopsis is a short overview of the whole conversation.
	Synopsis string `json:"summary"`

	// Topics are the main topics discussed.
	Topics []string `json:"topics"`

	// Questions are the important questions the students asked.
	Questions []string `json:"questions"`

	// Conclusions are the key findings or decisions reached.
	Conclusions []string `json:"conclusions"`
}

// Format renders the summary as the fixed report block: a divided synopsis
// section followed by the topic, question, and conclusion lists.
func (s *Summary) Format() string {
	b := prompt.NewBuilder()
	b.AddDividedSection("Zusammenfassung", s.Synopsis)
	b.AddList("Hauptthemen", s.Topics)
	b.AddList("Wichtige Fragen", s.Questions)
	b.AddList("Zentrale Erkenntnisse", s.Conclusions)
	return b.Build() + "\n"
}
