package classifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/semantic"
)

type stubScorer struct {
	score semantic.Score
	err   error
}

func (s stubScorer) Score(context.Context, string) (semantic.Score, error) {
	return s.score, s.err
}

type stubKnowledge struct {
	results    map[string][]KnowledgeResult
	categories map[string][]KnowledgeResult
	searchErr  error
	calls      []string
}

func (s *stubKnowledge) Search(_ context.Context, text string) ([]KnowledgeResult, error) {
	s.calls = append(s.calls, text)
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return s.results[text], nil
}

func (s *stubKnowledge) GetByCategory(_ context.Context, name string) ([]KnowledgeResult, error) {
	return s.categories[name], nil
}

type recordingRecorder struct {
	mu      sync.Mutex
	records []LearningRecord
}

func (r *recordingRecorder) Record(_ context.Context, rec LearningRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, rec)
}

func newValidator(scorer semantic.Scorer, knowledge KnowledgeStore, recorder Recorder) *Validator {
	return NewValidator(scorer, knowledge, recorder, Options{
		ConfidenceThreshold: 30,
		IrrelevantThreshold: 0.4,
		MaxKnowledgeResults: 5,
	}, logger.NewNopLogger())
}

func TestValidateAcceptsCorroboratedQuery(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.8, BestMatch: "quels sont vos tarifs", IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"tarifs": {{Title: "Tarifs", Content: "Nos abonnements démarrent à 10€."}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "quels sont vos tarifs ?")
	require.NoError(t, err)
	assert.True(t, res.IsInContext)
	assert.False(t, res.IsDefinitelyOutOfContext)
	assert.InDelta(t, 80, res.Confidence, 0.001)
	assert.True(t, res.HasRelevantKnowledge)
	assert.Empty(t, res.Response)
}

func TestValidateGeneralKeywordsForceRejection(t *testing.T) {
	// High similarity must not override the keyword signal.
	scorer := stubScorer{score: semantic.Score{Similarity: 0.95, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"quelle est la capitale de la France": {{Title: "Tarifs", Content: "x"}},
	}}
	recorder := &recordingRecorder{}

	res, err := newValidator(scorer, knowledge, recorder).Validate(context.Background(), "quelle est la capitale de la France")
	require.NoError(t, err)
	assert.True(t, res.IsDefinitelyOutOfContext)
	assert.True(t, res.ContainsGeneralKeywords)
	assert.Contains(t, res.Response, "capitale")
	require.Len(t, recorder.records, 1)
	assert.Equal(t, VerdictRejected, recorder.records[0].Verdict)
}

func TestValidateBrandMentionDisarmsKeywordOverride(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.7, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"dans quels pays SoukBot est-il disponible ?": {{Title: "Services", Content: "x"}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "dans quels pays SoukBot est-il disponible ?")
	require.NoError(t, err)
	assert.False(t, res.ContainsGeneralKeywords)
	assert.False(t, res.IsDefinitelyOutOfContext)
}

func TestValidateLowConfidenceWithoutCorroboration(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.1, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "une question vague")
	require.NoError(t, err)
	assert.True(t, res.IsDefinitelyOutOfContext)
	assert.False(t, res.HasRelevantKnowledge)
}

func TestValidateLowConfidenceRescuedByKnowledge(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.2, IrrelevantSimilarity: 0.1, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"comment renvoyer un article": {{Title: "Retours", Content: "Sous 30 jours."}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "comment renvoyer un article")
	require.NoError(t, err)
	assert.True(t, res.HasRelevantKnowledge)
	assert.False(t, res.IsDefinitelyOutOfContext)
}

func TestValidateIrrelevantSimilaritySignal(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.9, IrrelevantSimilarity: 0.9, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"une question ambiguë": {{Title: "Services", Content: "x"}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "une question ambiguë")
	require.NoError(t, err)
	// 0.9 * 0.5 = 0.45 > 0.4
	assert.True(t, res.IsDefinitelyOutOfContext)
}

func TestValidateSentinelTitleIsNotCorroboration(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.1, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"question étrange": {{Title: "Hors contexte", Content: "n/a"}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "question étrange")
	require.NoError(t, err)
	assert.False(t, res.HasRelevantKnowledge)
	assert.True(t, res.IsDefinitelyOutOfContext)
}

func TestValidateIntentFastPath(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.6, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{results: map[string][]KnowledgeResult{
		"contact":     {{Title: "Contact", Content: "mailto:support@soukbot.ma"}},
		"coordonnées": {{Title: "Coordonnées", Content: "..."}},
	}}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "comment vous contacter ?")
	require.NoError(t, err)
	assert.True(t, res.IsInContext)
	require.NotEmpty(t, res.Knowledge)
	assert.Equal(t, "Contact", res.Knowledge[0].Title)
	// Synonyms were searched, not the raw query.
	assert.Contains(t, knowledge.calls, "contact")
	assert.NotContains(t, knowledge.calls, "comment vous contacter ?")
}

func TestValidateIntentCategoryFallback(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.6, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{
		categories: map[string][]KnowledgeResult{
			"Horaires": {{Title: "Horaires", Content: "9h-18h du lundi au vendredi"}},
		},
	}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "vos horaires ?")
	require.NoError(t, err)
	require.NotEmpty(t, res.Knowledge)
	assert.Equal(t, "Horaires", res.Knowledge[0].Title)
}

func TestValidateScorerFailure(t *testing.T) {
	scorer := stubScorer{err: errors.New("embedding backend down")}

	_, err := newValidator(scorer, &stubKnowledge{}, nil).Validate(context.Background(), "peu importe")
	assert.Error(t, err)
}

func TestValidateKnowledgeFailureDegrades(t *testing.T) {
	scorer := stubScorer{score: semantic.Score{Similarity: 0.8, IrrelevantWeight: 0.5}}
	knowledge := &stubKnowledge{searchErr: errors.New("store down")}

	res, err := newValidator(scorer, knowledge, nil).Validate(context.Background(), "une question pertinente")
	require.NoError(t, err)
	assert.False(t, res.HasRelevantKnowledge)
	assert.False(t, res.IsDefinitelyOutOfContext, "high confidence alone should still accept")
}
