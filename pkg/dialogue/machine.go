package dialogue

import (
	"fmt"

	"soukbot-be/internal/constant"
)

// Transition is the outcome of feeding one user message to the machine.
// When RunSearch is set the caller owns the reply: the session carries a
// complete set of slots and the partner search produces the answer.
type Transition struct {
	Reply        string
	QuickReplies []string
	RunSearch    bool
}

// Machine advances a shopping session one step per user message.
// It mutates the session in place; persistence is the caller's concern.
type Machine struct{}

func NewMachine() *Machine {
	return &Machine{}
}

// Welcome returns the opening exchange for a fresh session and moves it
// to the product-type step.
func (m *Machine) Welcome(sess *Session) Transition {
	sess.Step = StepProductType
	return Transition{
		Reply:        constant.WelcomeMessage + "\n\n" + constant.ProductTypeQuestion,
		QuickReplies: []string{"Vêtements", "Électronique", "Électroménager", "Accessoires", "Sport & Loisirs", "Maison & Jardin"},
	}
}

// Advance applies one user message to the session's current step.
// Failed extraction keeps the session on the same step and re-asks with
// a clarification prefix; state never moves backward on bad input.
func (m *Machine) Advance(sess *Session, text string) Transition {
	switch sess.Step {
	case StepProductType:
		return m.collectProductType(sess, text)
	case StepBudget:
		return m.collectBudget(sess, text)
	case StepLocation:
		return m.collectLocation(sess, text)
	case StepSearch:
		// Any message after results restarts the flow.
		sess.ResetStep()
		return m.Welcome(sess)
	default:
		// Unknown step, likely a stale session payload. Restart.
		sess.ResetStep()
		return m.Welcome(sess)
	}
}

func (m *Machine) collectProductType(sess *Session, text string) Transition {
	category, ok := ExtractProductType(text)
	if !ok {
		return Transition{
			Reply:        "🤔 Je n'ai pas reconnu ce type de produit.\n\n" + constant.ProductTypeQuestion + "\n\n" + constant.ProductTypeSuggestions,
			QuickReplies: []string{"Vêtements", "Électronique", "Électroménager", "Accessoires"},
		}
	}
	return m.SetProductType(sess, category)
}

// SetProductType records an already-classified category and moves the
// session to the budget step, wherever the flow currently stands. Image
// uploads use this so a detected product restarts slot filling instead
// of being parsed as the answer to the pending question.
func (m *Machine) SetProductType(sess *Session, category string) Transition {
	sess.ProductType = category
	sess.Step = StepBudget
	return Transition{
		Reply:        fmt.Sprintf("✅ Parfait ! Vous recherchez : %s\n\n%s\n\n%s", category, constant.BudgetQuestion, constant.BudgetExamples),
		QuickReplies: constant.BudgetQuickReplies,
	}
}

func (m *Machine) collectBudget(sess *Session, text string) Transition {
	budget, ok := ExtractBudget(text)
	if !ok {
		return Transition{
			Reply:        "🤔 Je n'ai pas compris votre budget.\n\n" + constant.BudgetQuestion + "\n\n" + constant.BudgetExamples,
			QuickReplies: constant.BudgetQuickReplies,
		}
	}

	sess.BudgetMin = budget.Min
	sess.BudgetMax = budget.Max
	sess.BudgetSet = true
	sess.Step = StepLocation
	return Transition{
		Reply:        fmt.Sprintf("✅ Budget noté : %s\n\n%s\n\n%s", formatBudget(budget), constant.LocationQuestion, constant.CityExamples),
		QuickReplies: constant.CityQuickReplies,
	}
}

func (m *Machine) collectLocation(sess *Session, text string) Transition {
	scope := ExtractCity(text)
	if scope.Kind == ScopeNotProvided {
		return Transition{
			Reply:        "🤔 Je n'ai pas reconnu cette ville.\n\n" + constant.LocationQuestion + "\n\n" + constant.CityExamples,
			QuickReplies: constant.CityQuickReplies,
		}
	}

	sess.Location = scope
	sess.Step = StepSearch
	return Transition{RunSearch: true}
}

func formatBudget(b Budget) string {
	if b.Max >= NoLimitMax {
		if b.Min == 0 {
			return "pas de limite"
		}
		return fmt.Sprintf("à partir de %d€", b.Min)
	}
	return fmt.Sprintf("entre %d€ et %d€", b.Min, b.Max)
}
