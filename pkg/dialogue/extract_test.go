package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractProductType(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
		found    bool
	}{
		{"direct keyword", "je cherche des vêtements", "vêtements", true},
		{"synonym", "une robe pour l'été", "vêtements", true},
		{"electronics", "un téléviseur tv pas cher", "électronique", true},
		{"appliance", "il me faut un frigo", "électroménager", true},
		{"smartphone", "un iphone récent", "smartphones", true},
		{"case insensitive", "VÉLO de course", "sport", true},
		{"first match wins on ambiguity", "un ordinateur portable", "électronique", true},
		{"no match", "bonjour comment ça va", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractProductType(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractBudget(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Budget
		found    bool
	}{
		{"explicit range", "entre 50 et 200 euros", Budget{50, 200}, true},
		{"dash range", "100-500", Budget{100, 500}, true},
		{"maximum", "maximum 300 euros", Budget{0, 300}, true},
		{"jusqu'a", "jusqu'à 150", Budget{0, 150}, true},
		{"minimum", "minimum 80 euros", Budget{80, NoLimitMax}, true},
		{"a partir de", "à partir de 400", Budget{400, NoLimitMax}, true},
		{"no limit", "pas de limite de budget", Budget{0, NoLimitMax}, true},
		{"no limit beats digits", "pas de limite même à 1000", Budget{0, NoLimitMax}, true},
		{"bucket label", "50-200€", Budget{50, 200}, true},
		{"inverted range rejected", "entre 200 et 50", Budget{}, false},
		{"inverted dash rejected", "500-100", Budget{}, false},
		{"no amount", "un budget raisonnable", Budget{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractBudget(tt.text)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractCity(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected Scope
	}{
		{"known city", "à Casablanca", Scope{Kind: ScopeCity, City: "Casablanca"}},
		{"case insensitive", "rabat", Scope{Kind: ScopeCity, City: "Rabat"}},
		{"accented city", "je suis à Fès", Scope{Kind: ScopeCity, City: "Fès"}},
		{"nationwide", "toute la france", Scope{Kind: ScopeNationwide}},
		{"partout", "partout svp", Scope{Kind: ScopeNationwide}},
		{"unknown single token", "Essaouira", Scope{Kind: ScopeCity, City: "Essaouira"}},
		{"multi word unknown", "quelque part au sud", Scope{Kind: ScopeNotProvided}},
		{"too short", "ok", Scope{Kind: ScopeNotProvided}},
		{"empty", "", Scope{Kind: ScopeNotProvided}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ExtractCity(tt.text))
		})
	}
}
