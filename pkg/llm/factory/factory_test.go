package factory

import (
	"testing"

	"campus-guide-be/pkg/llm/gemini"
	"campus-guide-be/pkg/llm/huggingface"
	"campus-guide-be/pkg/llm/ollama"

	"github.com/stretchr/testify/assert"
)

func TestNewLLMProvider(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		want    interface{}
		wantErr bool
	}{
		{"gemini", Config{Provider: "gemini", APIKey: "k", Model: "gemini-2.0-flash"}, &gemini.GeminiProvider{}, false},
		{"gemini without key", Config{Provider: "gemini"}, nil, true},
		{"ollama", Config{Provider: "ollama", Model: "llama3"}, &ollama.OllamaProvider{}, false},
		{"huggingface", Config{Provider: "huggingface", Model: "m"}, &huggingface.HuggingFaceProvider{}, false},
		{"unknown", Config{Provider: "openai"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewLLMProvider(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.IsType(t, tt.want, p)
		})
	}
}

func TestOllamaDefaultURL(t *testing.T) {
	p, err := NewLLMProvider(Config{Provider: "ollama"})
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:11434", p.(*ollama.OllamaProvider).BaseURL)
}
