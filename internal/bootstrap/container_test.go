package bootstrap

import (
	"testing"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/internal/repository/unitofwork"
	"soukbot-be/pkg/embedding"
	"soukbot-be/pkg/semantic"

	"github.com/stretchr/testify/assert"
)

func TestNewContextScorerWithoutProviderIsLexical(t *testing.T) {
	scorer := newContextScorer(nil, unitofwork.NewRepositoryFactory(nil), 0.5, logger.NewNopLogger())
	assert.IsType(t, &semantic.LexicalScorer{}, scorer)
}

func TestNewContextScorerWithProviderUsesCorpus(t *testing.T) {
	provider := embedding.NewGeminiProvider("test-key")
	scorer := newContextScorer(provider, unitofwork.NewRepositoryFactory(nil), 0.5, logger.NewNopLogger())
	assert.IsType(t, &semantic.CorpusScorer{}, scorer)
}
