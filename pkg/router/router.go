// Package router selects a model backend for a task requirement by
// scoring declared capability profiles.
package router

import (
	"context"
	"log"

	"github.com/zen-systems/localmux/pkg/backend"
)

// Score weights for a (backend, profile) pair. The maximum total is 40.
const (
	domainWeight         = 10
	taskWeight           = 10
	languageWeight       = 5
	specializationWeight = 10
	performanceWeight    = 5
)

// Router defines the interface for capability-based backend selection.
type Router interface {
	// SelectBackend returns the best-scoring reachable backend for the
	// requirement, or nil when no backend scores above zero. The decision
	// carries the full score breakdown either way.
	SelectBackend(ctx context.Context, req backend.TaskRequirement, backends []backend.Backend) (backend.Backend, *Decision)
}

// DefaultRouter implements Router using additive capability scoring.
type DefaultRouter struct {
	probes *backend.ProbeCache
	debug  bool
}

// RouterOption configures a DefaultRouter.
type RouterOption func(*DefaultRouter)

// WithProbeCache sets the liveness probe cache.
func WithProbeCache(cache *backend.ProbeCache) RouterOption {
	return func(r *DefaultRouter) {
		r.probes = cache
	}
}

// WithDebug enables debug logging.
func WithDebug(debug bool) RouterOption {
	return func(r *DefaultRouter) {
		r.debug = debug
	}
}

// NewRouter creates a new router.
func NewRouter(opts ...RouterOption) *DefaultRouter {
	r := &DefaultRouter{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SelectBackend scores every profile of every reachable backend against
// the requirement and returns the best. Backends are visited in the order
// given; on equal scores the earlier backend wins, so registration order
// is the tie-break. Probe failures exclude a backend from scoring but are
// not routing failures.
func (r *DefaultRouter) SelectBackend(ctx context.Context, req backend.TaskRequirement, backends []backend.Backend) (backend.Backend, *Decision) {
	decision := &Decision{Requirement: req}

	var best backend.Backend
	bestScore := 0.0

	for _, b := range backends {
		if !r.reachable(ctx, b) {
			decision.Unreachable = append(decision.Unreachable, b.Name())
			if r.debug {
				log.Printf("[router] backend %s unreachable, skipping", b.Name())
			}
			continue
		}

		for i, profile := range b.Capabilities() {
			pair := scorePair(req, profile)
			pair.Backend = b.Name()
			pair.Profile = i
			decision.Scores = append(decision.Scores, pair)

			// Strictly greater: the first backend to reach a score keeps it.
			if pair.Total > bestScore {
				bestScore = pair.Total
				best = b
			}
		}
	}

	decision.BestScore = bestScore
	if best != nil {
		decision.Selected = best.Name()
	}
	if r.debug {
		log.Printf("[router] selected=%q score=%.1f for domain=%q task=%q", decision.Selected, bestScore, req.Domain, req.TaskType)
	}
	return best, decision
}

// reachable consults the probe cache when configured, otherwise probes
// directly. A probe error is treated as unreachable.
func (r *DefaultRouter) reachable(ctx context.Context, b backend.Backend) bool {
	if r.probes != nil {
		return r.probes.Reachable(ctx, b)
	}
	return b.IsReachable(ctx)
}

// scorePair computes the additive capability score for one profile.
// Scoring is evidence accumulation only; no component is subtractive.
func scorePair(req backend.TaskRequirement, profile backend.CapabilityProfile) PairScore {
	var pair PairScore

	if profile.Domain == req.Domain {
		pair.DomainScore = domainWeight
	}
	if profile.HasTask(req.TaskType) {
		pair.TaskScore = taskWeight
	}
	if req.Language != "" && profile.SupportsLanguage(req.Language) {
		pair.LanguageScore = languageWeight
	}
	if profile.HasSpecialization(req.Domain) {
		pair.SpecializationScore = specializationWeight
	}
	pair.PerformanceScore = performanceWeight * profile.Accuracy()

	pair.Total = pair.DomainScore + pair.TaskScore + pair.LanguageScore + pair.SpecializationScore + pair.PerformanceScore
	return pair
}
