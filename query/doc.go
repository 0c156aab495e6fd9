// Package query answers natural-language questions about a transcript using
// retrieval-augmented generation.
//
// Core types:
//   - Engine: Vector index over transcript + summary, query execution
//   - Service: Interface over the LLM service (probe, models, generation)
//   - Chunk: Overlapping fixed-size text splitting for indexing
//   - RunInteractive: The blocking question loop for the CLI
//
// Example usage:
//
//	engine, err := query.NewEngine(ctx, query.EngineParams{
//	    Service:    client,
//	    Transcript: tr,
//	    Summary:    sum.Format(),
//	    Config:     cfg,
//	    Logger:     log,
//	})
//	if err != nil {
//	    return err
//	}
//	answer, err := engine.Query(ctx, "Wo findet der Prozess statt?")
package query
