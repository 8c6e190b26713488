package core

// NewRulesEngine constructs an engine with no rules.
func NewRulesEngine() *RulesEngine {
	return &RulesEngine{}
}

// NewDefaultRulesEngine builds a rules engine with the built-in advisory
// rules. None of them block a commit.
func NewDefaultRulesEngine() *RulesEngine {
	engine := NewRulesEngine()
	engine.Register(NewContractStatusDriftRule(0))
	engine.Register(NewLowBatteryRule())
	return engine
}
