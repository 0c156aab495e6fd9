// Package summary generates structured summaries of transcripts.
//
// Core types:
//   - Summary: Synopsis, topics, student questions, and conclusions
//   - Summarizer: LLM-backed generation with JSON output and one fix-up pass
//   - Generator: Interface over the completion client
//
// Example usage:
//
//	s := summary.NewSummarizer(client, prompts, cfg.Model, log)
//	sum, err := s.Summarize(ctx, tr)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(sum.Format())
package summary
