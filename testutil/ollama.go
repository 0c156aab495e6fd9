package testutil

import (
	"encoding/json"
	"hash/fnv"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const defaultSummaryJSON = `{
	"summary": "Eine Stunde über Photosynthese.",
	"topics": ["Photosynthese"],
	"questions": ["Was entsteht dabei?"],
	"conclusions": ["Licht wird in chemische Energie umgewandelt."]
}`

// FakeOllama is an in-process stand-in for a local Ollama server. It serves
// the tags, show, pull, generate, and embeddings endpoints; embeddings come
// from WordHashEmbedding, so retrieval against the fake is deterministic.
type FakeOllama struct {
	srv *httptest.Server

	// GenerateFunc builds the response text for a generate call. When nil,
	// JSON-format calls get a fixed summary document and plain calls get a
	// fixed answer.
	GenerateFunc func(prompt, format string) string

	mu      sync.Mutex
	models  map[string]bool
	pulled  []string
	prompts []string
}

// NewFakeOllama starts a fake server reporting the given models as
// installed. The server shuts down when the test ends.
func NewFakeOllama(t *testing.T, models ...string) *FakeOllama {
	f := &FakeOllama{models: make(map[string]bool)}
	for _, m := range models {
		f.models[m] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", f.handleTags)
	mux.HandleFunc("/api/show", f.handleShow)
	mux.HandleFunc("/api/pull", f.handlePull)
	mux.HandleFunc("/api/generate", f.handleGenerate)
	mux.HandleFunc("/api/embeddings", f.handleEmbeddings)

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

// URL returns the server's base address.
func (f *FakeOllama) URL() string { return f.srv.URL }

// Pulled returns the models pulled so far, in order.
func (f *FakeOllama) Pulled() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pulled...)
}

// Prompts returns the generate prompts received so far, in order.
func (f *FakeOllama) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

func (f *FakeOllama) handleTags(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	names := make([]map[string]string, 0, len(f.models))
	for m := range f.models {
		names = append(names, map[string]string{"name": m})
	}
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]any{"models": names})
}

func (f *FakeOllama) handleShow(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	known := f.models[req.Name]
	f.mu.Unlock()

	if !known {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "model not found"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{})
}

func (f *FakeOllama) handlePull(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.pulled = append(f.pulled, req.Name)
	f.models[req.Name] = true
	f.mu.Unlock()

	_ = json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

func (f *FakeOllama) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
		Format string `json:"format"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	f.prompts = append(f.prompts, req.Prompt)
	f.mu.Unlock()

	text := ""
	switch {
	case f.GenerateFunc != nil:
		text = f.GenerateFunc(req.Prompt, req.Format)
	case req.Format == "json":
		text = defaultSummaryJSON
	default:
		text = "Antwort."
	}

	_ = json.NewEncoder(w).Encode(map[string]any{
		"model":    req.Model,
		"response": text,
		"done":     true,
	})
}

func (f *FakeOllama) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Model  string `json:"model"`
		Prompt string `json:"prompt"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)

	_ = json.NewEncoder(w).Encode(map[string]any{
		"embedding": WordHashEmbedding(req.Prompt, 256),
	})
}

// WordHashEmbedding maps each word of text onto a hashed dimension and
// normalizes the result to unit length, so texts sharing words come out
// similar. It gives retrieval tests a deterministic stand-in for a real
// embedding model.
func WordHashEmbedding(text string, dims int) []float32 {
	vec := make([]float32, dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(strings.Trim(word, ".,!?:;")))
		vec[h.Sum32()%uint32(dims)]++
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		vec[0] = 1
		return vec
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
