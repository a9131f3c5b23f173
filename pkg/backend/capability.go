package backend

// CapabilityProfile declares what a backend is good at. Profiles are
// immutable once registered; a backend may expose more than one.
type CapabilityProfile struct {
	Domain             string             `yaml:"domain" json:"domain"`
	Tasks              []string           `yaml:"tasks" json:"tasks"`
	LanguageSupport    []string           `yaml:"language_support,omitempty" json:"language_support,omitempty"`
	Specializations    []string           `yaml:"specializations,omitempty" json:"specializations,omitempty"`
	PerformanceMetrics map[string]float64 `yaml:"performance_metrics,omitempty" json:"performance_metrics,omitempty"`
}

// HasTask reports whether the profile declares the given task type.
func (p CapabilityProfile) HasTask(task string) bool {
	return contains(p.Tasks, task)
}

// SupportsLanguage reports whether the profile declares the given language.
func (p CapabilityProfile) SupportsLanguage(lang string) bool {
	return contains(p.LanguageSupport, lang)
}

// HasSpecialization reports whether the profile lists the given domain as
// a specialization.
func (p CapabilityProfile) HasSpecialization(domain string) bool {
	return contains(p.Specializations, domain)
}

// Accuracy returns the profile's accuracy metric, or 0 if not declared.
func (p CapabilityProfile) Accuracy() float64 {
	if p.PerformanceMetrics == nil {
		return 0
	}
	return p.PerformanceMetrics["accuracy"]
}

// TaskRequirement is the routing query derived from one inbound request.
// It lives for the duration of a single routing decision.
type TaskRequirement struct {
	Domain   string `json:"domain"`
	TaskType string `json:"task_type"`
	Language string `json:"language,omitempty"`
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
