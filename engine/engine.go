// Package engine keeps the registry of named eligibility policies and runs
// them: one policy or all active policies against a single candidate, or
// one policy across every stored employee.
package engine

import (
	"fmt"
	"sync"
	"time"

	"github.com/plrcalc/profitshare/employee"
	"github.com/plrcalc/profitshare/specification"
)

// Engine manages policy registration and evaluation. Safe for concurrent
// use: the policy map is guarded by an RWMutex and evaluation never mutates
// a specification tree.
type Engine struct {
	policies  map[string]*Policy
	order     []string // registration order, for deterministic listings
	cache     PolicyCache
	employees employee.Store
	mu        sync.RWMutex
}

// NewEngine creates an engine without an employee store. ScreenEmployees
// is unavailable until one is attached via NewEngineWithStore.
func NewEngine() *Engine {
	return NewEngineWithStore(nil)
}

// NewEngineWithStore creates an engine that screens employees from store.
func NewEngineWithStore(store employee.Store) *Engine {
	return &Engine{
		policies:  make(map[string]*Policy),
		cache:     NewInMemoryPolicyCache(DefaultCacheConfig()),
		employees: store,
	}
}

// AddPolicy registers a new policy. The specification tree must be fully
// assembled before registration; the engine shares it across goroutines.
func (en *Engine) AddPolicy(p *Policy) error {
	if p == nil || p.Spec == nil {
		return fmt.Errorf("policy must carry a specification")
	}
	if p.ID == "" {
		return fmt.Errorf("policy ID is required")
	}

	en.mu.Lock()
	defer en.mu.Unlock()

	if _, exists := en.policies[p.ID]; exists {
		return fmt.Errorf("policy with ID %s already exists", p.ID)
	}

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	en.policies[p.ID] = p
	en.order = append(en.order, p.ID)

	en.cache.Invalidate()
	return nil
}

// GetPolicy retrieves a policy by ID.
func (en *Engine) GetPolicy(id string) (*Policy, error) {
	en.mu.RLock()
	defer en.mu.RUnlock()

	p, exists := en.policies[id]
	if !exists {
		return nil, fmt.Errorf("policy with ID %s not found", id)
	}
	return p, nil
}

// UpdatePolicy replaces a registered policy, preserving CreatedAt.
func (en *Engine) UpdatePolicy(p *Policy) error {
	if p == nil || p.Spec == nil {
		return fmt.Errorf("policy must carry a specification")
	}

	en.mu.Lock()
	defer en.mu.Unlock()

	existing, exists := en.policies[p.ID]
	if !exists {
		return fmt.Errorf("policy with ID %s not found", p.ID)
	}

	p.CreatedAt = existing.CreatedAt
	p.UpdatedAt = time.Now()
	en.policies[p.ID] = p

	en.cache.Invalidate()
	return nil
}

// DeletePolicy removes a policy from the registry.
func (en *Engine) DeletePolicy(id string) error {
	en.mu.Lock()
	defer en.mu.Unlock()

	if _, exists := en.policies[id]; !exists {
		return fmt.Errorf("policy with ID %s not found", id)
	}

	delete(en.policies, id)
	for i, pid := range en.order {
		if pid == id {
			en.order = append(en.order[:i], en.order[i+1:]...)
			break
		}
	}

	en.cache.Invalidate()
	return nil
}

// ListActive returns all active policies in registration order. The list is
// cached between registry mutations.
func (en *Engine) ListActive() []*Policy {
	if cached := en.cache.Get(); cached != nil {
		return cached
	}

	en.mu.RLock()
	active := make([]*Policy, 0, len(en.order))
	for _, id := range en.order {
		if p := en.policies[id]; p.Active {
			active = append(active, p)
		}
	}
	en.mu.RUnlock()

	en.cache.Set(active)
	return active
}

// Evaluate runs one policy against a candidate.
func (en *Engine) Evaluate(policyID string, candidate specification.Candidate) (*EvaluationResult, error) {
	p, err := en.GetPolicy(policyID)
	if err != nil {
		return nil, err
	}
	return evaluatePolicy(p, candidate), nil
}

// EvaluateAll runs every active policy against a candidate. A policy that
// fails against the candidate's data does not stop the run; its result
// carries the error.
func (en *Engine) EvaluateAll(candidate specification.Candidate) []*EvaluationResult {
	active := en.ListActive()

	results := make([]*EvaluationResult, 0, len(active))
	for _, p := range active {
		results = append(results, evaluatePolicy(p, candidate))
	}
	return results
}

// ScreenEmployees runs one policy across every stored employee, oldest
// record first. Employees whose data violates the candidate contract stay
// in the report with the error attached.
func (en *Engine) ScreenEmployees(policyID string) ([]*EmployeeEligibility, error) {
	if en.employees == nil {
		return nil, fmt.Errorf("engine has no employee store attached")
	}

	p, err := en.GetPolicy(policyID)
	if err != nil {
		return nil, err
	}

	all, err := en.employees.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	report := make([]*EmployeeEligibility, 0, len(all))
	for _, e := range all {
		report = append(report, &EmployeeEligibility{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			Result:       evaluatePolicy(p, e.Candidate()),
		})
	}
	return report, nil
}

// evaluatePolicy produces one result, folding contract violations into the
// result rather than aborting the caller's batch.
func evaluatePolicy(p *Policy, candidate specification.Candidate) *EvaluationResult {
	result := &EvaluationResult{
		PolicyID:   p.ID,
		PolicyName: p.Name,
	}

	remainder, err := specification.RemainderUnsatisfiedBy(p.Spec, candidate)
	if err != nil {
		result.Error = err
		return result
	}

	if remainder == nil {
		result.Eligible = true
		return result
	}

	result.Remainder = fmt.Sprintf("%v", remainder)
	return result
}
