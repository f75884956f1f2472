package router

import (
	"pilot-career-service/internal/usecase"
	"pilot-career-service/pkg/logger"
)

// PolicyRouter resolves selection policies by name
type PolicyRouter struct {
	policies []usecase.SelectionPolicy
	logger   logger.Logger
}

// NewPolicyRouter creates a new policy router
func NewPolicyRouter(logger logger.Logger) *PolicyRouter {
	return &PolicyRouter{
		policies: make([]usecase.SelectionPolicy, 0),
		logger:   logger,
	}
}

// NewDefaultPolicyRouter creates a router with the built-in policies
func NewDefaultPolicyRouter(logger logger.Logger) *PolicyRouter {
	r := NewPolicyRouter(logger)
	r.Register(usecase.NewScoreRankedPolicy())
	r.Register(usecase.NewWeightedRandomPolicy())
	return r
}

// Register registers a policy. Policies registered first win on name
// collisions.
func (r *PolicyRouter) Register(policy usecase.SelectionPolicy) {
	r.policies = append(r.policies, policy)
	r.logger.Info("Registered selection policy", "policy", policy.Name())
}

// GetPolicy returns the policy answering to name, or nil
func (r *PolicyRouter) GetPolicy(name string) usecase.SelectionPolicy {
	for _, policy := range r.policies {
		if policy.CanHandle(name) {
			return policy
		}
	}
	return nil
}

// Names lists the canonical names of registered policies
func (r *PolicyRouter) Names() []string {
	names := make([]string, 0, len(r.policies))
	for _, policy := range r.policies {
		names = append(names, policy.Name())
	}
	return names
}
