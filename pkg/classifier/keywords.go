package classifier

import "strings"

// generalKnowledgeTriggers flag encyclopedic questions that have nothing
// to do with the catalog. A query containing one of these is rejected
// outright unless it also mentions the brand.
var generalKnowledgeTriggers = []string{
	"capitale",
	"pays",
	"président",
	"météo",
	"population",
	"géographie",
	"continent",
	"histoire de",
	"coupe du monde",
	"recette",
}

// offTopicPatterns are the hard-coded rejection terms checked after the
// merged verdict, again with the brand exemption.
var offTopicPatterns = []string{"capitale", "pays"}

// intentMappings routes recognized canonical intents to the synonyms
// used for targeted knowledge lookups. Iterated via intentOrder so the
// fast path is deterministic.
var intentMappings = map[string][]string{
	"contact":        {"contact", "coordonnées", "adresse", "téléphone", "email"},
	"nous contacter": {"contact", "coordonnées", "adresse", "téléphone", "email"},
	"horaires":       {"horaires", "ouverture", "fermeture", "disponibilité"},
	"services":       {"services", "offres", "solutions", "prestations"},
	"tarifs":         {"tarifs", "prix", "coût", "abonnement"},
	"adresse":        {"adresse", "localisation", "bureaux", "siège"},
}

var intentOrder = []string{"contact", "nous contacter", "horaires", "services", "tarifs", "adresse"}

func containsGeneralKeywords(query, brand string) bool {
	lower := strings.ToLower(query)
	if strings.Contains(lower, strings.ToLower(brand)) {
		return false
	}
	for _, trigger := range generalKnowledgeTriggers {
		if strings.Contains(lower, trigger) {
			return true
		}
	}
	return false
}

func matchesOffTopicPattern(query, brand string) bool {
	lower := strings.ToLower(query)
	if strings.Contains(lower, strings.ToLower(brand)) {
		return false
	}
	for _, p := range offTopicPatterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// matchIntent returns the first canonical intent contained in the query.
func matchIntent(query string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(query))
	for _, intent := range intentOrder {
		if strings.Contains(lower, intent) {
			return intent, true
		}
	}
	return "", false
}
