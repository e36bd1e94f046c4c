package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://embed.example.com"),
		WithEmbeddingModel("text-embedding-3-small"),
		WithAPIToken("secret"),
	)

	assert.Equal(t, "http://embed.example.com", cfg.EmbeddingHost)
	assert.Equal(t, "text-embedding-3-small", cfg.EmbeddingModel)
	assert.Equal(t, "secret", cfg.APIToken)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "embeddinggemma", cfg.EmbeddingModel)
	assert.Equal(t, "none", cfg.APIToken)
	require.NoError(t, cfg.Validate())
}

func TestConfigNormalize(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantHost string
	}{
		{
			name:     "adds v1 suffix",
			host:     "http://localhost:11434",
			wantHost: "http://localhost:11434/v1",
		},
		{
			name:     "strips trailing slash before adding v1",
			host:     "http://localhost:11434/",
			wantHost: "http://localhost:11434/v1",
		},
		{
			name:     "keeps existing v1",
			host:     "http://localhost:11434/v1",
			wantHost: "http://localhost:11434/v1",
		},
		{
			name:     "empty host untouched",
			host:     "",
			wantHost: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{EmbeddingHost: tt.host}
			cfg.Normalize()
			assert.Equal(t, tt.wantHost, cfg.EmbeddingHost)
			assert.Equal(t, "none", cfg.APIToken, "empty token defaults to none")
		})
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := NewConfig(WithEmbeddingHost(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig(WithEmbeddingModel(""))
	assert.Error(t, cfg.Validate())

	cfg = NewConfig()
	assert.NoError(t, cfg.Validate())
}
