package classifier

import (
	"context"
	"fmt"
	"strings"

	"soukbot-be/internal/constant"
	"soukbot-be/internal/pkg/logger"
	"soukbot-be/pkg/semantic"
)

// KnowledgeResult is one entry returned by the knowledge store.
type KnowledgeResult struct {
	Title    string
	Content  string
	Category string
}

// KnowledgeStore is the lookup side of the knowledge base.
type KnowledgeStore interface {
	Search(ctx context.Context, text string) ([]KnowledgeResult, error)
	GetByCategory(ctx context.Context, name string) ([]KnowledgeResult, error)
}

// Result carries the full classification verdict for one query,
// including the signals that produced it.
type Result struct {
	IsInContext              bool
	IsDefinitelyOutOfContext bool
	Confidence               float64
	Threshold                float64
	BestMatch                string
	BestSimilarity           float64
	IrrelevantSimilarity     float64
	IrrelevantWeight         float64
	ContainsGeneralKeywords  bool
	HasRelevantKnowledge     bool
	Knowledge                []KnowledgeResult
	Response                 string
}

// Options are the classifier's decision knobs.
type Options struct {
	ConfidenceThreshold float64
	IrrelevantThreshold float64
	MaxKnowledgeResults int
	Brand               string
}

// Validator decides whether a free-form query belongs to the supported
// domain. Three signals are evaluated independently then merged: the
// semantic score, a general-knowledge keyword override, and knowledge
// base corroboration. Any single strong negative signal rejects.
type Validator struct {
	scorer    semantic.Scorer
	knowledge KnowledgeStore
	recorder  Recorder
	opts      Options
	logger    logger.ILogger
}

func NewValidator(scorer semantic.Scorer, knowledge KnowledgeStore, recorder Recorder, opts Options, logger logger.ILogger) *Validator {
	if opts.MaxKnowledgeResults <= 0 {
		opts.MaxKnowledgeResults = 5
	}
	if opts.Brand == "" {
		opts.Brand = constant.BrandName
	}
	return &Validator{
		scorer:    scorer,
		knowledge: knowledge,
		recorder:  recorder,
		opts:      opts,
		logger:    logger,
	}
}

func (v *Validator) Validate(ctx context.Context, query string) (*Result, error) {
	score, err := v.scorer.Score(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("semantic scoring failed: %w", err)
	}

	res := &Result{
		Confidence:              score.Similarity * 100,
		Threshold:               v.opts.ConfidenceThreshold,
		BestMatch:               score.BestMatch,
		BestSimilarity:          score.Similarity,
		IrrelevantSimilarity:    score.IrrelevantSimilarity,
		IrrelevantWeight:        score.IrrelevantWeight,
		ContainsGeneralKeywords: containsGeneralKeywords(query, v.opts.Brand),
	}
	// The scorer's own verdict: the query sits closer to the off-topic
	// corpus than to the in-scope one.
	semanticOutOfContext := score.IrrelevantSimilarity > score.Similarity

	res.Knowledge = v.lookupKnowledge(ctx, query)
	res.HasRelevantKnowledge = len(res.Knowledge) > 0 &&
		!strings.Contains(strings.ToLower(res.Knowledge[0].Title), constant.OutOfContextSentinel)

	res.IsDefinitelyOutOfContext = semanticOutOfContext ||
		res.ContainsGeneralKeywords ||
		(res.Confidence < v.opts.ConfidenceThreshold && !res.HasRelevantKnowledge) ||
		(res.IrrelevantSimilarity*res.IrrelevantWeight > v.opts.IrrelevantThreshold) ||
		matchesOffTopicPattern(query, v.opts.Brand)
	res.IsInContext = !res.IsDefinitelyOutOfContext

	if res.IsDefinitelyOutOfContext {
		res.Response = v.outOfScopeResponse(query)
		v.logger.Warn("classifier", "out-of-context query rejected", map[string]interface{}{
			"query":                     query,
			"confidence":                res.Confidence,
			"knowledge_results":         len(res.Knowledge),
			"contains_general_keywords": res.ContainsGeneralKeywords,
		})
		if v.recorder != nil {
			v.recorder.Record(ctx, LearningRecord{
				Query:      query,
				Verdict:    VerdictRejected,
				Confidence: res.Confidence,
				BestMatch:  res.BestMatch,
			})
		}
	}

	return res, nil
}

// lookupKnowledge implements the keyword-mapped fast path: on an intent
// hit, each synonym is searched in turn until the result cap is reached,
// with a category lookup as a second chance. Only when the intent
// dictionary produced nothing does the generic full-text search run.
// Lookup errors degrade to an empty result set, never fail validation.
func (v *Validator) lookupKnowledge(ctx context.Context, query string) []KnowledgeResult {
	var results []KnowledgeResult

	if intent, ok := matchIntent(query); ok {
		for _, keyword := range intentMappings[intent] {
			found, err := v.knowledge.Search(ctx, keyword)
			if err != nil {
				v.logger.Warn("classifier", "keyword knowledge search failed", map[string]interface{}{
					"keyword": keyword, "error": err.Error(),
				})
				continue
			}
			results = append(results, found...)
			if len(results) >= v.opts.MaxKnowledgeResults {
				return results[:v.opts.MaxKnowledgeResults]
			}
		}
		if len(results) == 0 {
			category := strings.ToUpper(intent[:1]) + intent[1:]
			found, err := v.knowledge.GetByCategory(ctx, category)
			if err == nil && len(found) > 0 {
				if len(found) > v.opts.MaxKnowledgeResults {
					found = found[:v.opts.MaxKnowledgeResults]
				}
				return found
			}
		}
		if len(results) > 0 {
			return results
		}
	}

	found, err := v.knowledge.Search(ctx, query)
	if err != nil {
		v.logger.Warn("classifier", "knowledge search failed", map[string]interface{}{
			"query": query, "error": err.Error(),
		})
		return nil
	}
	return found
}

func (v *Validator) outOfScopeResponse(query string) string {
	return fmt.Sprintf("Je suis désolé, mais votre question \"%s\" sort du cadre de mes compétences. Je suis l'assistant %s et je peux vous renseigner sur nos partenaires, nos services, nos tarifs et vous aider dans vos recherches de produits. Comment puis-je vous aider ?",
		truncate(query, 80), v.opts.Brand)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
