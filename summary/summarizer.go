package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/lektorhq/lektor/config"
	"github.com/lektorhq/lektor/ollama"
	"github.com/lektorhq/lektor/prompt"
	"github.com/lektorhq/lektor/transcript"
)

// ErrEmptyTranscript indicates a transcript with no statements. Summarization
// refuses it before any model call.
var ErrEmptyTranscript = errors.New("transcript has no statements")

// Generator produces LLM completions. *ollama.Client implements it.
type Generator interface {
	Generate(ctx context.Context, req ollama.GenerateRequest) (*ollama.GenerateResponse, error)
}

// Summarizer turns transcripts into structured summaries using an LLM with
// JSON-constrained output and a single fix-up pass for malformed responses.
type Summarizer struct {
	gen     Generator
	prompts *prompt.Loader
	model   config.ModelConfig
	log     *slog.Logger
}

// NewSummarizer creates a summarizer. A nil logger discards log output.
func NewSummarizer(gen Generator, prompts *prompt.Loader, model config.ModelConfig, log *slog.Logger) *Summarizer {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Summarizer{
		gen:     gen,
		prompts: prompts,
		model:   model,
		log:     log,
	}
}

// Summarize generates a structured summary of the transcript.
//
// The model is asked for strict JSON. If the first response does not decode,
// the model gets exactly one chance to repair its own output before the
// error is surfaced.
func (s *Summarizer) Summarize(ctx context.Context, tr *transcript.Transcript) (*Summary, error) {
	if len(tr.Statements) == 0 {
		return nil, ErrEmptyTranscript
	}

	promptText, err := s.prompts.LoadWithVars(prompt.Summarize, map[string]any{
		"transcript": tr.FullText(),
	})
	if err != nil {
		return nil, fmt.Errorf("loading summarize prompt: %w", err)
	}

	s.log.Debug("generating summary",
		"model", s.model.ModelName,
		"statements", len(tr.Statements))

	resp, err := s.gen.Generate(ctx, s.request(promptText))
	if err != nil {
		return nil, fmt.Errorf("summarizing transcript: %w", err)
	}

	sum, parseErr := parseSummary([]byte(resp.Response))
	if parseErr == nil {
		return sum, nil
	}

	s.log.Warn("summary output malformed, requesting fix-up", "error", parseErr)

	fixPrompt, err := s.prompts.LoadWithVars(prompt.FixJSON, map[string]any{
		"raw": resp.Response,
	})
	if err != nil {
		return nil, fmt.Errorf("loading fix-up prompt: %w", err)
	}

	fixed, err := s.gen.Generate(ctx, s.request(fixPrompt))
	if err != nil {
		return nil, fmt.Errorf("summarizing transcript: fix-up generation: %w", err)
	}

	sum, err = parseSummary([]byte(fixed.Response))
	if err != nil {
		return nil, fmt.Errorf("summarizing transcript: %w", err)
	}
	return sum, nil
}

func (s *Summarizer) request(promptText string) ollama.GenerateRequest {
	return ollama.GenerateRequest{
		Model:  s.model.ModelName,
		Prompt: promptText,
		Format: "json",
		Options: &ollama.GenerateOptions{
			Temperature: s.model.Temperature,
			NumCtx:      s.model.ContextWindow,
			NumPredict:  s.model.MaxTokens,
		},
	}
}

// parseSummary decodes model output into a Summary, tolerating prose around
// the JSON object. All four fields must be present.
func parseSummary(data []byte) (*Summary, error) {
	data = bytes.TrimSpace(data)

	var raw rawSummary
	if err := json.Unmarshal(data, &raw); err != nil {
		start := bytes.Index(data, []byte("{"))
		end := bytes.LastIndex(data, []byte("}"))
		if start < 0 || end <= start {
			return nil, fmt.Errorf("no json found in output")
		}
		if err := json.Unmarshal(data[start:end+1], &raw); err != nil {
			return nil, fmt.Errorf("parse summary output: %w", err)
		}
	}

	return raw.toSummary()
}

// rawSummary uses pointer fields so absent keys are detectable.
type rawSummary struct {
	Synopsis    *string   `json:"summary"`
	Topics      *[]string `json:"topics"`
	Questions   *[]string `json:"questions"`
	Conclusions *[]string `json:"conclusions"`
}

func (r *rawSummary) toSummary() (*Summary, error) {
	switch {
	case r.Synopsis == nil:
		return nil, fmt.Errorf("summary output missing field %q", "summary")
	case r.Topics == nil:
		return nil, fmt.Errorf("summary output missing field %q", "topics")
	case r.Questions == nil:
		return nil, fmt.Errorf("summary output missing field %q", "questions")
	case r.Conclusions == nil:
		return nil, fmt.Errorf("summary output missing field %q", "conclusions")
	}

	return &Summary{
		Synopsis:    *r.Synopsis,
		Topics:      *r.Topics,
		Questions:   *r.Questions,
		Conclusions: *r.Conclusions,
	}, nil
}
