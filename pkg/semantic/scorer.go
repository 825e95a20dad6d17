package semantic

import "context"

// Corpus entry kinds. In-scope questions raise the similarity signal,
// known off-topic questions raise the irrelevant signal.
const (
	KindInScope    = "in_scope"
	KindIrrelevant = "irrelevant"
)

// Score is the semantic verdict for one query. Similarity values are
// normalized to [0,1]; callers derive a percentage confidence from it.
type Score struct {
	Similarity           float64
	BestMatch            string
	IrrelevantSimilarity float64
	IrrelevantWeight     float64
}

// Scorer rates how close a query sits to the supported domain.
type Scorer interface {
	Score(ctx context.Context, query string) (Score, error)
}
