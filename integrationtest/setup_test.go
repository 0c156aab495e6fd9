// Package integrationtest runs the pipeline against a real Ollama server.
//
// The tests are skipped unless LEKTOR_INTEGRATION=1 is set and a server
// answers at OLLAMA_HOST (default http://localhost:11434). Run them with:
//
//	LEKTOR_INTEGRATION=1 go test ./...
package integrationtest

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/lektorhq/lektor/config"
	"github.com/lektorhq/lektor/ollama"
)

// liveConfig returns the default configuration pointed at the live server,
// with the output directory redirected into the test's temp dir.
func liveConfig(t *testing.T) config.Config {
	t.Helper()

	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	if host := os.Getenv("OLLAMA_HOST"); host != "" {
		cfg.OllamaHost = host
	}
	return cfg
}

// liveClient skips the test unless integration mode is enabled and the
// server is reachable.
func liveClient(t *testing.T, cfg config.Config) *ollama.Client {
	t.Helper()

	if os.Getenv("LEKTOR_INTEGRATION") != "1" {
		t.Skip("set LEKTOR_INTEGRATION=1 to run against a live Ollama server")
	}

	client := ollama.NewClient(ollama.ClientConfig{Host: cfg.OllamaHost})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx); err != nil {
		t.Skipf("no Ollama server at %s: %v", cfg.OllamaHost, err)
	}
	return client
}

// requireModel skips the test when the model is not installed. Pulling
// gigabytes inside a test run is not an option.
func requireModel(t *testing.T, client *ollama.Client, model string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ok, err := client.HasModel(ctx, model)
	if err != nil {
		t.Fatalf("HasModel(%q) error = %v", model, err)
	}
	if !ok {
		t.Skipf("model %s not installed; run: ollama pull %s", model, model)
	}
}
