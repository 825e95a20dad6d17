package semantic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalScorerInScopeQuery(t *testing.T) {
	s := NewLexicalScorer(DefaultInScopeCorpus, DefaultIrrelevantCorpus, 0.5)

	score, err := s.Score(context.Background(), "comment contacter soukbot ?")
	require.NoError(t, err)
	assert.Greater(t, score.Similarity, 0.5)
	assert.Equal(t, "comment contacter soukbot", score.BestMatch)
	assert.Greater(t, score.Similarity, score.IrrelevantSimilarity)
}

func TestLexicalScorerOffTopicQuery(t *testing.T) {
	s := NewLexicalScorer(DefaultInScopeCorpus, DefaultIrrelevantCorpus, 0.5)

	score, err := s.Score(context.Background(), "quelle est la capitale de la france")
	require.NoError(t, err)
	assert.Greater(t, score.IrrelevantSimilarity, score.Similarity)
	assert.Equal(t, 0.5, score.IrrelevantWeight)
}

func TestLexicalScorerNoOverlap(t *testing.T) {
	s := NewLexicalScorer(DefaultInScopeCorpus, DefaultIrrelevantCorpus, 0.5)

	score, err := s.Score(context.Background(), "xyzzy")
	require.NoError(t, err)
	assert.Zero(t, score.Similarity)
	assert.Zero(t, score.IrrelevantSimilarity)
	assert.Empty(t, score.BestMatch)
}

func TestJaccardBounds(t *testing.T) {
	a := tokenize("les horaires d'ouverture")
	assert.Equal(t, 1.0, jaccard(a, a))
	assert.Equal(t, 0.0, jaccard(a, tokenize("")))
}
