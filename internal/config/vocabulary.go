package config

import (
	"fmt"
	"os"

	"campus-guide-be/pkg/guide/intent"

	"gopkg.in/yaml.v3"
)

// LoadVocabulary reads keyword buckets from a YAML file. Buckets missing
// from the file keep their built-in values. An empty path yields the
// built-in vocabulary.
func LoadVocabulary(path string) (intent.Vocabulary, error) {
	defaults := intent.DefaultVocabulary()
	if path == "" {
		return defaults, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return intent.Vocabulary{}, fmt.Errorf("read vocabulary %s: %w", path, err)
	}
	return ParseVocabulary(raw)
}

func ParseVocabulary(raw []byte) (intent.Vocabulary, error) {
	var v intent.Vocabulary
	if err := yaml.Unmarshal(raw, &v); err != nil {
		return intent.Vocabulary{}, fmt.Errorf("parse vocabulary: %w", err)
	}

	v = v.Merge(intent.DefaultVocabulary())
	if err := v.Validate(); err != nil {
		return intent.Vocabulary{}, fmt.Errorf("invalid vocabulary: %w", err)
	}
	return v, nil
}
