package dialogue

// Step identifies where a shopping session is in the slot-filling flow.
type Step string

const (
	StepWelcome     Step = "welcome"
	StepProductType Step = "product_type"
	StepBudget      Step = "budget"
	StepLocation    Step = "location"
	StepSearch      Step = "search"
)

// NoLimitMax is the upper bound stored when the user declines a budget cap.
const NoLimitMax = 999999

// ScopeKind distinguishes "no city yet" from "explicitly nationwide".
// The two used to share a nil representation; they are different intents.
type ScopeKind int

const (
	ScopeNotProvided ScopeKind = iota
	ScopeNationwide
	ScopeCity
)

// Scope is the location slot of a session.
type Scope struct {
	Kind ScopeKind
	City string // set only when Kind == ScopeCity
}

// Session is the per-user slot-filling state held in memory.
// It lives for the process lifetime only; at most one per user id.
type Session struct {
	UserID      string `json:"user_id"`
	Step        Step   `json:"step"`
	ProductType string `json:"product_type"`
	BudgetMin   int    `json:"budget_min"`
	BudgetMax   int    `json:"budget_max"`
	BudgetSet   bool   `json:"budget_set"`
	Location    Scope  `json:"location"`
	Country     string `json:"country"`
}

func NewSession(userID, country string) *Session {
	return &Session{
		UserID:  userID,
		Step:    StepWelcome,
		Country: country,
	}
}

// ResetStep returns the session to the welcome step and clears the
// collected slots so the next search starts from scratch.
func (s *Session) ResetStep() {
	s.Step = StepWelcome
	s.ProductType = ""
	s.BudgetMin = 0
	s.BudgetMax = 0
	s.BudgetSet = false
	s.Location = Scope{Kind: ScopeNotProvided}
}
