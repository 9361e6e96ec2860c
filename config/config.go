package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the retrieval engine.
type Config struct {
	Chunker    ChunkerConfig    `yaml:"chunker"`
	Cache      CacheConfig      `yaml:"cache"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
}

// ChunkerConfig holds chunking configuration.
type ChunkerConfig struct {
	ChunkSize    int `yaml:"chunk_size"`    // character threshold per chunk
	OverlapWords int `yaml:"overlap_words"` // trailing words carried into the next chunk
}

// CacheConfig holds embedding-cache configuration.
type CacheConfig struct {
	Dir        string `yaml:"dir"`
	Backend    string `yaml:"backend"` // "file" (one file per key) or "bolt"
	MaxEntries int    `yaml:"max_entries"`
	MaxBytes   int64  `yaml:"max_bytes"`
}

// IngestConfig holds ingestion configuration.
type IngestConfig struct {
	MaxParallelDocs int `yaml:"max_parallel_docs"`
}

// RetrieveConfig holds retrieval and reranking configuration.
type RetrieveConfig struct {
	TopK             int     `yaml:"top_k"`
	SimilarityWeight float64 `yaml:"similarity_weight"`
	LexicalWeight    float64 `yaml:"lexical_weight"`
}

// EmbeddingConfig holds embedding-provider configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "hashing"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Dimension int    `yaml:"dimension"` // used by the hashing provider
}

// GenerationConfig holds generation-model configuration.
type GenerationConfig struct {
	Provider    string  `yaml:"provider"` // "openai" or "none"
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	BaseURL     string  `yaml:"base_url"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Chunker: ChunkerConfig{
			ChunkSize:    200,
			OverlapWords: 5,
		},
		Cache: CacheConfig{
			Dir:        ".semdex/cache",
			Backend:    "file",
			MaxEntries: 1024,
			MaxBytes:   64 << 20,
		},
		Ingest: IngestConfig{
			MaxParallelDocs: 4,
		},
		Retrieve: RetrieveConfig{
			TopK:             3,
			SimilarityWeight: 0.7,
			LexicalWeight:    0.3,
		},
		Embedding: EmbeddingConfig{
			Provider:  "hashing",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			Dimension: 512,
		},
		Generation: GenerationConfig{
			Provider:    "none",
			Model:       "gpt-4o-mini",
			APIKeyEnv:   "OPENAI_API_KEY",
			MaxTokens:   1024,
			Temperature: 0.2,
		},
	}
}

// Load loads configuration from a YAML file, returning defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory, looking for semdex.yaml
// and then .semdex/config.yaml.
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "semdex.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".semdex", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
