package dialogue

import (
	"regexp"
	"strconv"
	"strings"
)

// productMapping pairs a canonical category with its trigger keywords.
// Order matters: the first category with any keyword contained in the
// text wins, so the slice is the tie-break.
type productMapping struct {
	Category string
	Keywords []string
}

var productMappings = []productMapping{
	{"vêtements", []string{"vêtement", "habit", "robe", "pantalon", "chemise", "pull", "mode"}},
	{"électronique", []string{"électronique", "électro", "tv", "télé", "ordinateur", "tablette"}},
	{"électroménager", []string{"électroménager", "frigo", "lave-linge", "four", "micro-onde"}},
	{"accessoires", []string{"accessoire", "sac", "ceinture", "écharpe", "gant"}},
	{"sport", []string{"sport", "fitness", "musculation", "course", "vélo"}},
	{"maison", []string{"maison", "meuble", "canapé", "table", "chaise"}},
	{"informatique", []string{"informatique", "ordinateur", "pc", "laptop", "clavier", "souris"}},
	{"smartphones", []string{"smartphone", "téléphone", "mobile", "iphone", "android"}},
	{"cosmétiques", []string{"cosmétique", "maquillage", "crème", "parfum", "beauté"}},
}

// ExtractProductType maps free text to a canonical category.
// Deterministic: same text always yields the same category.
func ExtractProductType(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, m := range productMappings {
		for _, kw := range m.Keywords {
			if strings.Contains(lower, kw) {
				return m.Category, true
			}
		}
	}
	return "", false
}

// Budget is a fully resolved budget range. Extraction fills in the
// missing bound (0 or NoLimitMax) so callers never see a half-range.
type Budget struct {
	Min int
	Max int
}

var (
	reNoLimit     = regexp.MustCompile(`pas\s+de\s+limite|sans\s+limite|illimité`)
	reBudgetRange = regexp.MustCompile(`entre\s+(\d+)\s+et\s+(\d+)`)
	reBudgetExact = regexp.MustCompile(`(\d+)\s*[-–]\s*(\d+)`)
	reBudgetMax   = regexp.MustCompile(`(?:maximum|max)\s+(\d+)|jusqu['’]?\s*à\s+(\d+)`)
	reBudgetMin   = regexp.MustCompile(`(?:minimum|min)\s+(\d+)|à\s+partir\s+de\s+(\d+)`)
)

// quick-reply bucket labels and their literal values
var budgetBuckets = []struct {
	Label    string
	Min, Max int
}{
	{"50-200", 50, 200},
	{"100-500", 100, 500},
	{"500-1000", 500, 1000},
}

// ExtractBudget parses a budget phrase. Patterns are tried in a fixed
// order; "pas de limite" wins over any digits in the same message.
// An inverted range (min > max) is rejected, never returned.
func ExtractBudget(text string) (Budget, bool) {
	lower := strings.ToLower(text)

	if reNoLimit.MatchString(lower) {
		return Budget{Min: 0, Max: NoLimitMax}, true
	}

	if m := reBudgetRange.FindStringSubmatch(lower); m != nil {
		return validRange(atoi(m[1]), atoi(m[2]))
	}

	if m := reBudgetExact.FindStringSubmatch(lower); m != nil {
		return validRange(atoi(m[1]), atoi(m[2]))
	}

	if m := reBudgetMax.FindStringSubmatch(lower); m != nil {
		return Budget{Min: 0, Max: atoi(firstNonEmpty(m[1:]))}, true
	}

	if m := reBudgetMin.FindStringSubmatch(lower); m != nil {
		return Budget{Min: atoi(firstNonEmpty(m[1:])), Max: NoLimitMax}, true
	}

	for _, b := range budgetBuckets {
		if strings.Contains(lower, b.Label) {
			return Budget{Min: b.Min, Max: b.Max}, true
		}
	}

	return Budget{}, false
}

func validRange(min, max int) (Budget, bool) {
	if min > max {
		return Budget{}, false
	}
	return Budget{Min: min, Max: max}, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func firstNonEmpty(groups []string) string {
	for _, g := range groups {
		if g != "" {
			return g
		}
	}
	return ""
}

// cities known to carry partner coverage
var cityGazetteer = []string{
	"Casablanca", "Rabat", "Fès", "Marrakech", "Agadir",
	"Tanger", "Oujda", "Meknès", "Tétouan", "Kenitra",
}

var nationwidePhrases = []string{"toute la france", "tout le maroc", "partout"}

var reSingleToken = regexp.MustCompile(`^[a-zA-ZÀ-ÿ-]+$`)

// ExtractCity resolves the location slot with a three-way outcome:
// an explicit nationwide request, a recognized (or plausible) city, or
// nothing usable.
func ExtractCity(text string) Scope {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, p := range nationwidePhrases {
		if strings.Contains(lower, p) {
			return Scope{Kind: ScopeNationwide}
		}
	}

	for _, city := range cityGazetteer {
		if strings.Contains(lower, strings.ToLower(city)) {
			return Scope{Kind: ScopeCity, City: city}
		}
	}

	// A lone alphabetic token could still be a city we don't know.
	if len([]rune(lower)) > 2 && !strings.Contains(lower, " ") && reSingleToken.MatchString(lower) {
		return Scope{Kind: ScopeCity, City: titleCase(lower)}
	}

	return Scope{Kind: ScopeNotProvided}
}

func titleCase(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
