package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachineHappyPath(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")

	tr := m.Welcome(sess)
	assert.Equal(t, StepProductType, sess.Step)
	assert.Contains(t, tr.Reply, "assistant shopping")

	tr = m.Advance(sess, "je cherche des vêtements")
	assert.Equal(t, StepBudget, sess.Step)
	assert.Equal(t, "vêtements", sess.ProductType)
	assert.Contains(t, tr.Reply, "budget")

	tr = m.Advance(sess, "entre 50 et 200 euros")
	assert.Equal(t, StepLocation, sess.Step)
	assert.True(t, sess.BudgetSet)
	assert.Equal(t, 50, sess.BudgetMin)
	assert.Equal(t, 200, sess.BudgetMax)

	tr = m.Advance(sess, "Casablanca")
	require.True(t, tr.RunSearch)
	assert.Equal(t, StepSearch, sess.Step)
	assert.Equal(t, ScopeCity, sess.Location.Kind)
	assert.Equal(t, "Casablanca", sess.Location.City)
}

func TestMachineFailedExtractionKeepsStep(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	m.Welcome(sess)

	tr := m.Advance(sess, "bonjour")
	assert.Equal(t, StepProductType, sess.Step)
	assert.Contains(t, tr.Reply, "pas reconnu")
	assert.False(t, tr.RunSearch)

	m.Advance(sess, "électronique")
	tr = m.Advance(sess, "entre 300 et 100")
	assert.Equal(t, StepBudget, sess.Step, "inverted range must not advance")
	assert.Contains(t, tr.Reply, "pas compris")
}

func TestMachineNoLimitBudget(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	m.Welcome(sess)
	m.Advance(sess, "smartphone")

	tr := m.Advance(sess, "pas de limite")
	assert.Equal(t, StepLocation, sess.Step)
	assert.Equal(t, 0, sess.BudgetMin)
	assert.Equal(t, NoLimitMax, sess.BudgetMax)
	assert.Contains(t, tr.Reply, "pas de limite")
}

func TestMachineNationwideLocation(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	m.Welcome(sess)
	m.Advance(sess, "vêtements")
	m.Advance(sess, "maximum 100")

	tr := m.Advance(sess, "toute la france")
	assert.True(t, tr.RunSearch)
	assert.Equal(t, ScopeNationwide, sess.Location.Kind)
	assert.Empty(t, sess.Location.City)
}

func TestMachineRestartsAfterSearch(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	m.Welcome(sess)
	m.Advance(sess, "vêtements")
	m.Advance(sess, "50-200")
	m.Advance(sess, "Rabat")
	require.Equal(t, StepSearch, sess.Step)

	tr := m.Advance(sess, "nouvelle recherche")
	assert.Equal(t, StepProductType, sess.Step)
	assert.Empty(t, sess.ProductType)
	assert.False(t, sess.BudgetSet)
	assert.Contains(t, tr.Reply, "assistant shopping")
}

func TestMachineUnknownStepResets(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	sess.Step = Step("corrupted")

	tr := m.Advance(sess, "salut")
	assert.Equal(t, StepProductType, sess.Step)
	assert.Contains(t, tr.Reply, "assistant shopping")
}

func TestMachineSetProductTypeJumpsToBudget(t *testing.T) {
	m := NewMachine()
	sess := NewSession("user-1", "Maroc")
	m.Welcome(sess)
	m.Advance(sess, "électronique")
	m.Advance(sess, "entre 50 et 200 euros")
	require.Equal(t, StepLocation, sess.Step)

	tr := m.SetProductType(sess, "vêtements")
	assert.Equal(t, StepBudget, sess.Step)
	assert.Equal(t, "vêtements", sess.ProductType)
	assert.Contains(t, tr.Reply, "budget")
	assert.False(t, tr.RunSearch)
}
