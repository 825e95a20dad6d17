package vision

import (
	"context"
	"errors"

	"soukbot-be/internal/pkg/logger"
)

// Classification is one backend's verdict on an uploaded image. The
// conversation flow only consumes ProductType, as if the user had typed
// it.
type Classification struct {
	ProductType     string
	Confidence      float64
	DetectedObjects []DetectedObject
	Method          string
}

type DetectedObject struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Classifier is a single image classification backend.
type Classifier interface {
	Name() string
	Classify(ctx context.Context, image []byte) (Classification, error)
}

// Chain tries backends in rank order and returns the first success.
// Backend failure is an expected outcome, not control flow by panic:
// each miss is logged and the next candidate gets its turn.
type Chain struct {
	backends []Classifier
	logger   logger.ILogger
}

func NewChain(logger logger.ILogger, backends ...Classifier) *Chain {
	return &Chain{backends: backends, logger: logger}
}

func (c *Chain) Name() string { return "chain" }

func (c *Chain) Classify(ctx context.Context, image []byte) (Classification, error) {
	for _, backend := range c.backends {
		result, err := backend.Classify(ctx, image)
		if err == nil {
			return result, nil
		}
		c.logger.Warn("vision", "classification backend failed, trying next", map[string]interface{}{
			"backend": backend.Name(),
			"error":   err.Error(),
		})
	}
	return Classification{}, errors.New("all classification backends failed")
}
