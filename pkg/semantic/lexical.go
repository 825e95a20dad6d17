package semantic

import (
	"context"
	"strings"
)

// LexicalScorer is a dependency-free fallback used when no embedding
// backend is configured. It scores queries by token-set overlap
// (Jaccard) against in-memory corpus question lists. Coarser than the
// vector scorer but deterministic and always available.
type LexicalScorer struct {
	inScope          []string
	irrelevant       []string
	irrelevantWeight float64
}

func NewLexicalScorer(inScope, irrelevant []string, irrelevantWeight float64) *LexicalScorer {
	return &LexicalScorer{
		inScope:          inScope,
		irrelevant:       irrelevant,
		irrelevantWeight: irrelevantWeight,
	}
}

// DefaultInScopeCorpus covers the supported assistant domain.
var DefaultInScopeCorpus = []string{
	"comment contacter soukbot",
	"quels sont vos horaires d'ouverture",
	"quels services proposez-vous",
	"quels sont vos tarifs",
	"quelle est votre adresse",
	"je cherche des vêtements pas chers",
	"où trouver de l'électroménager",
	"comment fonctionne la recherche de partenaires",
	"quels partenaires proposez-vous à casablanca",
	"comment modifier ma recherche",
}

// DefaultIrrelevantCorpus holds known off-topic questions.
var DefaultIrrelevantCorpus = []string{
	"quelle est la capitale de la france",
	"quel temps fait-il aujourd'hui",
	"qui a gagné la coupe du monde",
	"raconte-moi une blague",
	"quelle est la population du maroc",
	"comment cuisiner un tajine",
}

func (s *LexicalScorer) Score(_ context.Context, query string) (Score, error) {
	score := Score{IrrelevantWeight: s.irrelevantWeight}
	tokens := tokenize(query)

	for _, q := range s.inScope {
		if sim := jaccard(tokens, tokenize(q)); sim > score.Similarity {
			score.Similarity = sim
			score.BestMatch = q
		}
	}
	for _, q := range s.irrelevant {
		if sim := jaccard(tokens, tokenize(q)); sim > score.IrrelevantSimilarity {
			score.IrrelevantSimilarity = sim
		}
	}
	return score, nil
}

func tokenize(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		tok = strings.Trim(tok, ".,!?;:'\"()")
		if len([]rune(tok)) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}
