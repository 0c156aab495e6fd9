package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
)

// ModelConfig holds the LLM model parameters.
type ModelConfig struct {
	// ModelName is the Ollama model used for generation.
	ModelName string `json:"model_name"`

	// EmbeddingModel is the Ollama model used for embeddings.
	// Empty means ModelName is used.
	EmbeddingModel string `json:"embedding_model,omitempty"`

	// Temperature is the sampling temperature for generation.
	Temperature float64 `json:"temperature"`

	// MaxTokens caps the number of generated tokens. Zero means no limit.
	MaxTokens int `json:"max_tokens,omitempty"`

	// ContextWindow is the model context size in tokens.
	ContextWindow int `json:"context_window"`

	// Overlap is the character overlap between neighboring chunks when
	// splitting text for retrieval.
	Overlap int `json:"overlap"`
}

// Embedder returns the model used for embeddings.
func (m ModelConfig) Embedder() string {
	if m.EmbeddingModel != "" {
		return m.EmbeddingModel
	}
	return m.ModelName
}

// RetrievalConfig holds the similarity-search parameters.
type RetrievalConfig struct {
	// TopK is how many chunks are retrieved per question.
	TopK int `json:"top_k"`

	// ChunkSize is the target chunk length in characters.
	ChunkSize int `json:"chunk_size"`

	// MinContextChars is the minimal retrieved-context length below which
	// a question is answered with the fixed fallback message instead of
	// calling the model.
	MinContextChars int `json:"min_context_chars"`
}

// Config is the application configuration. It is loaded once at startup and
// treated as immutable afterwards.
type Config struct {
	Model     ModelConfig     `json:"model"`
	Retrieval RetrievalConfig `json:"retrieval"`

	// Language is the primary language of the transcripts, as a BCP 47 tag.
	Language string `json:"language"`

	// OutputDir receives the log file, summary artifacts, and the
	// sessions directory.
	OutputDir string `json:"output_dir"`

	// OllamaHost is the base URL of the local Ollama server.
	// The OLLAMA_HOST environment variable overrides it.
	OllamaHost string `json:"ollama_host"`

	// Verbose echoes log lines to stderr and lowers the log level.
	Verbose bool `json:"verbose"`
}

// Default returns the documented default configuration.
func Default() Config {
	return Config{
		Model: ModelConfig{
			ModelName:     "llama3.2",
			Temperature:   0.1,
			ContextWindow: 10000,
			Overlap:       200,
		},
		Retrieval: RetrievalConfig{
			TopK:            3,
			ChunkSize:       1000,
			MinContextChars: 10,
		},
		Language:   "de",
		OutputDir:  "outputs",
		OllamaHost: "http://localhost:11434",
	}
}

// DefaultPath returns the fixed config location under the user's home,
// ~/.config/lektor/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "lektor", "config.json"), nil
}

// Load reads the config file at path. Absent fields keep their defaults;
// a malformed file or an invalid value is an error. The OLLAMA_HOST
// environment variable overrides the configured host.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadIfExists loads path when the file exists and returns the defaults,
// with environment overrides applied, when it does not. Unlike LoadOrCreate
// it never writes anything.
func LoadIfExists(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		applyEnv(&cfg)
		return cfg, nil
	}
	return Load(path)
}

// LoadOrCreate loads the config at path, falling back to the default
// location when path is empty. A missing file is created with defaults
// first, so a fresh machine starts from a documented state.
func LoadOrCreate(path string) (Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), err
		}
		path = p
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := CreateDefault(path); err != nil {
			return Default(), err
		}
	}

	return Load(path)
}

// applyEnv applies environment overrides.
func applyEnv(cfg *Config) {
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.OllamaHost = host
	}
}

// Validate checks value ranges. Defaults always pass.
func (c Config) Validate() error {
	if c.Model.ModelName == "" {
		return fmt.Errorf("model.model_name must not be empty")
	}
	if c.Model.Temperature < 0 || c.Model.Temperature > 2 {
		return fmt.Errorf("model.temperature %v outside [0, 2]", c.Model.Temperature)
	}
	if c.Model.MaxTokens < 0 {
		return fmt.Errorf("model.max_tokens must not be negative")
	}
	if c.Retrieval.ChunkSize <= 0 {
		return fmt.Errorf("retrieval.chunk_size must be positive")
	}
	if c.Model.Overlap < 0 || c.Model.Overlap >= c.Retrieval.ChunkSize {
		return fmt.Errorf("model.overlap %d must be in [0, chunk_size)", c.Model.Overlap)
	}
	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive")
	}
	if c.Retrieval.MinContextChars < 0 {
		return fmt.Errorf("retrieval.min_context_chars must not be negative")
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("language %q is not a valid BCP 47 tag: %w", c.Language, err)
		}
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.OllamaHost == "" {
		return fmt.Errorf("ollama_host must not be empty")
	}
	return nil
}
