// Package session persists interactive question-answer sessions.
//
// Core types:
//   - Session: One run against a transcript with its exchanges and summary
//   - QA: A single question-answer pair
//   - Store: JSON file persistence under <output_dir>/sessions
//   - Viewer: Terminal rendering of session lists and details
//
// Example usage:
//
//	store, err := session.NewStore(cfg.OutputDir)
//	if err != nil {
//	    return err
//	}
//	sess := session.New("lecture.txt", summaryText)
//	sess.Record("Wo findet der Prozess statt?", answer)
//	path, err := store.Save(sess)
package session
