package vision

import (
	"context"
	"strings"
	"unicode/utf8"
)

// simulationPatterns are checked against textual metadata carried in
// place of real image bytes (filename, caption). Later entries win.
var simulationPatterns = []struct {
	Keywords    []string
	ProductType string
	Confidence  float64
}{
	{[]string{"phone", "mobile"}, "smartphones", 0.85},
	{[]string{"shoe", "boot"}, "chaussures", 0.85},
	{[]string{"shirt", "dress"}, "vêtements", 0.85},
}

var simulationProductTypes = []string{
	"vêtements", "électronique", "électroménager", "accessoires",
	"sport", "maison", "informatique", "smartphones", "cosmétiques",
}

// SimulatedClassifier is the last resort when no vision backend is
// reachable. When the payload is readable text it scans it for product
// hints, otherwise it falls back to a default guess. It never fails, so
// a chain ending in it always produces a product type.
type SimulatedClassifier struct{}

func NewSimulatedClassifier() *SimulatedClassifier {
	return &SimulatedClassifier{}
}

func (s *SimulatedClassifier) Name() string { return "simulation" }

func (s *SimulatedClassifier) Classify(_ context.Context, image []byte) (Classification, error) {
	productType, confidence := "accessoires", 0.6

	if utf8.Valid(image) {
		lower := strings.ToLower(string(image))
		for _, t := range simulationProductTypes {
			if strings.Contains(lower, t) {
				productType, confidence = t, 0.8
				break
			}
		}
		for _, p := range simulationPatterns {
			for _, kw := range p.Keywords {
				if strings.Contains(lower, kw) {
					productType, confidence = p.ProductType, p.Confidence
				}
			}
		}
	}

	return Classification{
		ProductType:     productType,
		Confidence:      confidence,
		DetectedObjects: []DetectedObject{{Name: productType, Confidence: confidence}},
		Method:          "simulation",
	}, nil
}
