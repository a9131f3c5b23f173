package router

import "github.com/zen-systems/localmux/pkg/backend"

// PairScore captures the score breakdown for one (backend, profile) pair.
type PairScore struct {
	Backend             string  `json:"backend"`
	Profile             int     `json:"profile"`
	DomainScore         float64 `json:"domain_score"`
	TaskScore           float64 `json:"task_score"`
	LanguageScore       float64 `json:"language_score"`
	SpecializationScore float64 `json:"specialization_score"`
	PerformanceScore    float64 `json:"performance_score"`
	Total               float64 `json:"total"`
}

// Decision captures routing decision details for one selection call.
type Decision struct {
	Requirement backend.TaskRequirement `json:"requirement"`
	Selected    string                  `json:"selected,omitempty"`
	BestScore   float64                 `json:"best_score"`
	Scores      []PairScore             `json:"scores,omitempty"`
	Unreachable []string                `json:"unreachable,omitempty"`
}
