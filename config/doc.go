// Package config provides the typed application configuration.
//
// Configuration lives in a single JSON file mirroring the Config struct.
// Precedence, highest first:
//  1. OLLAMA_HOST environment variable (host only)
//  2. Values present in the config file
//  3. Built-in defaults
//
// # Basic Usage
//
// Load from an explicit path, or fall back to the default location
// (~/.config/lektor/config.json), creating it with defaults on first run:
//
//	cfg, err := config.LoadOrCreate(flagConfigPath)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Model.ModelName) // "llama3.2"
//
// Absent fields keep their defaults, so a config file only needs the
// values it changes:
//
//	{"model": {"model_name": "mistral"}, "language": "de"}
//
// Loaded configs are validated; out-of-range values (a negative chunk
// overlap, an unknown language tag) fail loudly at startup rather than
// misbehaving later in the pipeline.
package config
