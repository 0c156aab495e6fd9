// Package prompt provides prompt template loading and management.
//
// Core types:
//   - Loader: Loads prompt templates from files or embedded resources
//   - Builder: Assembles text blocks from headers, lists, and sections
//
// The German prompts driving summarization and question answering ship
// embedded in the binary (Summarize, Answer, FixJSON); a project can override
// any of them by placing a same-named .txt file under .lektor/prompts/.
//
// Example usage:
//
//	loader := prompt.NewLoader(".")
//	text, err := loader.LoadWithVars(prompt.Answer, map[string]any{
//	    "context":  retrieved,
//	    "question": "Wo findet der Prozess statt?",
//	})
package prompt
