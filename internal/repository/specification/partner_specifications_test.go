package specification

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// whereConditions builds the query without a database and returns the
// WHERE clause split into its AND-combined conditions, with values
// inlined so the fragments are comparable across orderings.
func whereConditions(t *testing.T, specs ...Specification) []string {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	require.NoError(t, err)

	query := db.Table("partners")
	for _, s := range specs {
		query = s.Apply(query)
	}

	var rows []map[string]interface{}
	stmt := query.Find(&rows).Statement
	explained := db.Dialector.Explain(stmt.SQL.String(), stmt.Vars...)

	parts := strings.SplitN(explained, " WHERE ", 2)
	require.Len(t, parts, 2, "query has no WHERE clause: %s", explained)

	conditions := strings.Split(parts[1], " AND ")
	sort.Strings(conditions)
	return conditions
}

func permute(specs []Specification) [][]Specification {
	if len(specs) <= 1 {
		return [][]Specification{append([]Specification(nil), specs...)}
	}
	var out [][]Specification
	for i := range specs {
		rest := make([]Specification, 0, len(specs)-1)
		rest = append(rest, specs[:i]...)
		rest = append(rest, specs[i+1:]...)
		for _, p := range permute(rest) {
			out = append(out, append([]Specification{specs[i]}, p...))
		}
	}
	return out
}

func TestPartnerFilterOrderIndependence(t *testing.T) {
	specs := []Specification{
		ByProductType{ProductType: "vêtements"},
		ByBudgetOverlap{BudgetMin: 50, BudgetMax: 200},
		ByCity{City: "Casablanca"},
		ByCountry{Country: "Maroc"},
	}

	baseline := whereConditions(t, specs...)
	require.Len(t, baseline, len(specs))

	for _, perm := range permute(specs) {
		assert.Equal(t, baseline, whereConditions(t, perm...))
	}
}

func TestPartnerFilterConditions(t *testing.T) {
	conditions := whereConditions(t,
		ByProductType{ProductType: "électronique"},
		ByBudgetOverlap{BudgetMin: 100, BudgetMax: 500},
		ByCity{City: "Rabat"},
	)

	joined := strings.Join(conditions, " AND ")
	assert.Contains(t, joined, "jsonb_array_elements_text(product_types)")
	assert.Contains(t, joined, "%électronique%")
	assert.Contains(t, joined, "NOT (price_range_max < 100 OR price_range_min > 500)")
	assert.Contains(t, joined, "LOWER(city) = LOWER(")
}
