package query

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/philippgille/chromem-go"

	"github.com/lektorhq/lektor/config"
	lekerrors "github.com/lektorhq/lektor/errors"
	"github.com/lektorhq/lektor/ollama"
	"github.com/lektorhq/lektor/prompt"
	"github.com/lektorhq/lektor/transcript"
)

// CannotAnswer is the fixed reply used when retrieval yields no usable
// context. The answer prompt instructs the model to reply with the same
// sentence when the retrieved context is insufficient.
const CannotAnswer = "Diese Frage kann ich basierend auf dem gegebenen Kontext nicht beantworten."

// Service is the LLM service surface the engine needs. *ollama.Client
// implements it.
type Service interface {
	Ping(ctx context.Context) error
	HasModel(ctx context.Context, model string) (bool, error)
	Pull(ctx context.Context, model string) error
	Generate(ctx context.Context, req ollama.GenerateRequest) (*ollama.GenerateResponse, error)
}

// EngineParams configures NewEngine.
type EngineParams struct {
	Service    Service
	Transcript *transcript.Transcript
	Summary    string
	Config     *config.Config

	// Prompts overrides the template loader. Defaults to the embedded
	// templates.
	Prompts *prompt.Loader

	// Embedding overrides the embedding function. Defaults to Ollama
	// embeddings for Config.Model.Embedder() against Config.OllamaHost.
	Embedding chromem.EmbeddingFunc

	// Logger receives engine events. A nil logger discards them.
	Logger *slog.Logger
}

// Engine answers questions about one transcript with retrieval-augmented
// generation over an in-memory vector index.
type Engine struct {
	svc     Service
	col     *chromem.Collection
	prompts *prompt.Loader
	cfg     *config.Config
	log     *slog.Logger
}

// NewEngine verifies the LLM service is reachable, ensures the configured
// models are available (pulling a missing model once), and builds the vector
// index over the transcript text concatenated with the summary.
func NewEngine(ctx context.Context, p EngineParams) (*Engine, error) {
	log := p.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	prompts := p.Prompts
	if prompts == nil {
		prompts = prompt.NewLoader("")
	}
	cfg := p.Config

	if err := p.Service.Ping(ctx); err != nil {
		log.Error("ollama server unreachable", "host", cfg.OllamaHost, "error", err)
		return nil, lekerrors.WrapConnectionError(err, cfg.OllamaHost, cfg.Model.ModelName)
	}

	if err := ensureModel(ctx, p.Service, cfg.Model.ModelName, log); err != nil {
		return nil, err
	}
	if embModel := cfg.Model.Embedder(); embModel != cfg.Model.ModelName {
		if err := ensureModel(ctx, p.Service, embModel, log); err != nil {
			return nil, err
		}
	}

	embed := p.Embedding
	if embed == nil {
		embed = chromem.NewEmbeddingFuncOllama(cfg.Model.Embedder(), cfg.OllamaHost+"/api")
	}

	db := chromem.NewDB()
	col, err := db.CreateCollection("transcript", nil, embed)
	if err != nil {
		return nil, fmt.Errorf("creating vector collection: %w", err)
	}

	corpus := p.Transcript.FullText() + "\n\n" + p.Summary
	chunks := Chunk(corpus, cfg.Retrieval.ChunkSize, cfg.Model.Overlap)

	if len(chunks) > 0 {
		docs := make([]chromem.Document, len(chunks))
		for i, chunk := range chunks {
			docs[i] = chromem.Document{
				ID:      fmt.Sprintf("chunk-%d", i),
				Content: chunk,
			}
		}
		// Embedding runs sequentially; the pipeline is single-threaded.
		if err := col.AddDocuments(ctx, docs, 1); err != nil {
			return nil, fmt.Errorf("indexing transcript: %w", err)
		}
	}

	log.Info("vector index built", "chunks", len(chunks))

	return &Engine{
		svc:     p.Service,
		col:     col,
		prompts: prompts,
		cfg:     cfg,
		log:     log,
	}, nil
}

// ensureModel checks model availability and pulls a missing model exactly
// once. Persistent unavailability surfaces as a model error.
func ensureModel(ctx context.Context, svc Service, model string, log *slog.Logger) error {
	ok, err := svc.HasModel(ctx, model)
	if err != nil {
		return fmt.Errorf("checking model availability: %w", err)
	}
	if ok {
		return nil
	}

	log.Warn("model not found, pulling", "model", model)
	if err := svc.Pull(ctx, model); err != nil {
		return lekerrors.NewModelUnavailableError(model, err)
	}
	log.Info("model pulled", "model", model)
	return nil
}

// Query answers a single question from the indexed transcript.
//
// The top-k most similar chunks form the context. When nothing is retrieved,
// or the trimmed context is shorter than the configured minimum, the fixed
// CannotAnswer sentence is returned without a model call. Retrieval and
// generation failures are logged and returned; there is no retry.
func (e *Engine) Query(ctx context.Context, question string) (string, error) {
	n := e.cfg.Retrieval.TopK
	if count := e.col.Count(); n > count {
		n = count
	}
	if n == 0 {
		return CannotAnswer, nil
	}

	results, err := e.col.Query(ctx, question, n, nil, nil)
	if err != nil {
		e.log.Error("retrieval failed", "error", err)
		return "", fmt.Errorf("retrieving context: %w", err)
	}
	if len(results) == 0 {
		return CannotAnswer, nil
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = r.Content
	}
	retrieved := strings.Join(parts, "\n")

	if utf8.RuneCountInString(strings.TrimSpace(retrieved)) < e.cfg.Retrieval.MinContextChars {
		return CannotAnswer, nil
	}

	promptText, err := e.prompts.LoadWithVars(prompt.Answer, map[string]any{
		"context":  retrieved,
		"question": question,
	})
	if err != nil {
		return "", fmt.Errorf("loading answer prompt: %w", err)
	}

	resp, err := e.svc.Generate(ctx, ollama.GenerateRequest{
		Model:  e.cfg.Model.ModelName,
		Prompt: promptText,
		Options: &ollama.GenerateOptions{
			Temperature: e.cfg.Model.Temperature,
			NumCtx:      e.cfg.Model.ContextWindow,
			NumPredict:  e.cfg.Model.MaxTokens,
		},
	})
	if err != nil {
		e.log.Error("answer generation failed", "question", question, "error", err)
		return "", fmt.Errorf("answering question: %w", err)
	}

	return strings.TrimSpace(resp.Response), nil
}
