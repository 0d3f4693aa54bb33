package adaptive

// Config holds the gates for difficulty cap promotion and demotion.
type Config struct {
	PromotionMinProblems int     `json:"promotion_min_problems"`
	PromotionAccuracy    float64 `json:"promotion_accuracy"`
	StagnationProblems   int     `json:"stagnation_problems"`
	DemotionWindow       int     `json:"demotion_window"`
	DemotionAccuracy     float64 `json:"demotion_accuracy"`
}

// DefaultConfig returns the standard progression gates.
func DefaultConfig() *Config {
	return &Config{
		PromotionMinProblems: 4,
		PromotionAccuracy:    0.8, // 4/5 correct
		StagnationProblems:   8,
		DemotionWindow:       3,
		DemotionAccuracy:     0.5,
	}
}

// Result describes what one progression evaluation decided.
type Result struct {
	Promoted bool   `json:"promoted"`
	Demoted  bool   `json:"demoted"`
	Reason   string `json:"reason,omitempty"`
	NewCap   string `json:"new_cap"`
}
