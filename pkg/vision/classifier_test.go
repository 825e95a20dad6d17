package vision

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soukbot-be/internal/pkg/logger"
)

type failingClassifier struct{ calls int }

func (f *failingClassifier) Name() string { return "failing" }

func (f *failingClassifier) Classify(context.Context, []byte) (Classification, error) {
	f.calls++
	return Classification{}, errors.New("backend unavailable")
}

func TestChainFallsBackToNextBackend(t *testing.T) {
	failing := &failingClassifier{}
	chain := NewChain(logger.NewNopLogger(), failing, NewSimulatedClassifier())

	result, err := chain.Classify(context.Background(), []byte("photo of a smartphone"))
	require.NoError(t, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, "simulation", result.Method)
	assert.Equal(t, "smartphones", result.ProductType)
}

func TestChainAllBackendsFail(t *testing.T) {
	chain := NewChain(logger.NewNopLogger(), &failingClassifier{}, &failingClassifier{})

	_, err := chain.Classify(context.Background(), []byte("x"))
	assert.Error(t, err)
}

func TestSimulatedClassifierPatterns(t *testing.T) {
	s := NewSimulatedClassifier()
	ctx := context.Background()

	tests := []struct {
		name       string
		metadata   string
		want       string
		confidence float64
	}{
		{"phone pattern", "IMG_phone_2024.jpg", "smartphones", 0.85},
		{"shoe pattern", "red-boot-photo.png", "chaussures", 0.85},
		{"category name", "catalogue électroménager", "électroménager", 0.8},
		{"no hint", "DSC00042.RAW", "accessoires", 0.6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Classify(ctx, []byte(tt.metadata))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.ProductType)
			assert.InDelta(t, tt.confidence, got.Confidence, 0.001)
		})
	}
}

func TestSimulatedClassifierBinaryPayload(t *testing.T) {
	got, err := NewSimulatedClassifier().Classify(context.Background(), []byte{0xff, 0xd8, 0xff, 0xe0})
	require.NoError(t, err)
	assert.Equal(t, "accessoires", got.ProductType)
}

func TestClassificationFromLabels(t *testing.T) {
	labels := []labelAnnotation{
		{Description: "Shoe", Score: 0.95},
		{Description: "Footwear", Score: 0.92},
		{Description: "Sneakers", Score: 0.88},
	}

	got := classificationFromLabels(labels)
	assert.Equal(t, "chaussures", got.ProductType)
	assert.Len(t, got.DetectedObjects, 3)
	assert.Equal(t, "google_vision", got.Method)
	assert.LessOrEqual(t, got.Confidence, 1.0)
}

func TestClassificationFromLabelsDefault(t *testing.T) {
	got := classificationFromLabels(nil)
	assert.Equal(t, "accessoires", got.ProductType)
}
