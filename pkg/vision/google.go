package vision

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// labelMappings translates Vision API labels (English) into catalog
// product types (French). Every keyword is matched by containment
// against the lowercased label text.
var labelMappings = map[string][]string{
	"vêtements":      {"clothing", "shirt", "dress", "pants", "jacket", "coat", "sweater", "blouse", "skirt", "jeans"},
	"chaussures":     {"shoe", "boot", "sneaker", "sandal", "heel", "footwear"},
	"électronique":   {"electronics", "computer", "laptop", "tablet", "monitor", "keyboard", "mouse"},
	"smartphones":    {"phone", "smartphone", "mobile", "iphone", "android"},
	"électroménager": {"appliance", "refrigerator", "washing machine", "microwave", "oven", "dishwasher"},
	"accessoires":    {"bag", "purse", "wallet", "belt", "hat", "cap", "scarf", "gloves"},
	"bijoux":         {"jewelry", "ring", "necklace", "bracelet", "earring"},
	"montres":        {"watch", "clock", "timepiece"},
	"cosmétiques":    {"cosmetics", "makeup", "lipstick", "foundation", "mascara"},
	"parfums":        {"perfume", "fragrance", "cologne"},
	"sport":          {"sports", "ball", "equipment", "fitness", "gym", "exercise"},
	"jouets":         {"toy", "doll", "game", "puzzle", "lego", "action figure"},
	"livres":         {"book", "novel", "magazine", "publication"},
	"automobile":     {"car", "vehicle", "automotive", "tire", "wheel"},
	"maison":         {"furniture", "chair", "table", "sofa", "bed", "lamp"},
	"jardin":         {"plant", "flower", "garden", "pot", "watering can"},
	"décoration":     {"decoration", "vase", "picture", "frame", "candle"},
}

// GoogleClassifier calls the Vision REST annotate endpoint for label
// detection and maps the labels onto catalog product types.
type GoogleClassifier struct {
	ApiKey  string
	BaseURL string
	client  *http.Client
}

func NewGoogleClassifier(apiKey, baseURL string) *GoogleClassifier {
	if baseURL == "" {
		baseURL = "https://vision.googleapis.com/v1"
	}
	return &GoogleClassifier{
		ApiKey:  apiKey,
		BaseURL: baseURL,
		client:  &http.Client{},
	}
}

func (g *GoogleClassifier) Name() string { return "google_vision" }

type annotateRequest struct {
	Requests []struct {
		Image struct {
			Content string `json:"content"`
		} `json:"image"`
		Features []struct {
			Type       string `json:"type"`
			MaxResults int    `json:"maxResults"`
		} `json:"features"`
	} `json:"requests"`
}

type annotateResponse struct {
	Responses []struct {
		LabelAnnotations []labelAnnotation `json:"labelAnnotations"`
	} `json:"responses"`
}

type labelAnnotation struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

func (g *GoogleClassifier) Classify(ctx context.Context, image []byte) (Classification, error) {
	if g.ApiKey == "" {
		return Classification{}, errors.New("vision api key not configured")
	}
	if len(image) == 0 {
		return Classification{}, errors.New("empty image")
	}

	var annotateReq annotateRequest
	annotateReq.Requests = make([]struct {
		Image struct {
			Content string `json:"content"`
		} `json:"image"`
		Features []struct {
			Type       string `json:"type"`
			MaxResults int    `json:"maxResults"`
		} `json:"features"`
	}, 1)
	annotateReq.Requests[0].Image.Content = base64.StdEncoding.EncodeToString(image)
	annotateReq.Requests[0].Features = []struct {
		Type       string `json:"type"`
		MaxResults int    `json:"maxResults"`
	}{{Type: "LABEL_DETECTION", MaxResults: 10}}

	body, err := json.Marshal(annotateReq)
	if err != nil {
		return Classification{}, err
	}

	endpoint := fmt.Sprintf("%s/images:annotate?key=%s", g.BaseURL, g.ApiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(body))
	if err != nil {
		return Classification{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := g.client.Do(req)
	if err != nil {
		return Classification{}, err
	}
	defer res.Body.Close()

	resBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return Classification{}, err
	}
	if res.StatusCode != http.StatusOK {
		return Classification{}, fmt.Errorf("error from vision response, code %d, body %s", res.StatusCode, string(resBytes))
	}

	var annotateRes annotateResponse
	if err := json.Unmarshal(resBytes, &annotateRes); err != nil {
		return Classification{}, err
	}
	if len(annotateRes.Responses) == 0 {
		return Classification{}, errors.New("empty vision response")
	}

	return classificationFromLabels(annotateRes.Responses[0].LabelAnnotations), nil
}

func classificationFromLabels(labels []labelAnnotation) Classification {
	// Mean score of the top labels, damped by the mapping confidence.
	avg := 0.5
	if len(labels) > 0 {
		n := len(labels)
		if n > 3 {
			n = 3
		}
		sum := 0.0
		for _, l := range labels[:n] {
			sum += l.Score
		}
		avg = sum / float64(n)
	}

	bestType, bestConfidence := "accessoires", 0.3
	for productType, keywords := range labelMappings {
		for _, kw := range keywords {
			for _, label := range labels {
				if strings.Contains(strings.ToLower(label.Description), kw) {
					confidence := label.Score * 0.8
					if confidence > bestConfidence ||
						(confidence == bestConfidence && productType < bestType) {
						bestType, bestConfidence = productType, confidence
					}
				}
			}
		}
	}

	objects := make([]DetectedObject, 0, 5)
	for i, l := range labels {
		if i >= 5 {
			break
		}
		objects = append(objects, DetectedObject{Name: l.Description, Confidence: l.Score})
	}

	confidence := avg * bestConfidence
	if confidence > 1 {
		confidence = 1
	}
	return Classification{
		ProductType:     bestType,
		Confidence:      confidence,
		DetectedObjects: objects,
		Method:          "google_vision",
	}
}
