package game

// Decision represents a player's decision with reasoning
type Decision struct {
	Action    Action
	Amount    int    // raise-to total for bets and raises
	Reasoning string // human readable explanation
}

// Agent is anything that decides for a player. Agents receive an immutable
// view of the table and never mutate it.
type Agent interface {
	MakeDecision(state TableState, validActions []ValidAction) Decision
}

// AgentFunc adapts a function to Agent
type AgentFunc func(state TableState, validActions []ValidAction) Decision

func (f AgentFunc) MakeDecision(state TableState, validActions []ValidAction) Decision {
	return f(state, validActions)
}

// Find returns the valid action matching a, if present
func Find(validActions []ValidAction, a Action) (ValidAction, bool) {
	for _, va := range validActions {
		if va.Action == a {
			return va, true
		}
	}
	return ValidAction{}, false
}

// Passive returns the cheapest non-folding action, falling back to fold
func Passive(validActions []ValidAction) Decision {
	if _, ok := Find(validActions, Check); ok {
		return Decision{Action: Check, Reasoning: "check"}
	}
	return Decision{Action: Fold, Reasoning: "fold"}
}
