package employee

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Store manages employee persistence and retrieval.
type Store interface {
	// Add a new employee record.
	Add(e *Employee) error

	// Get an employee by ID.
	Get(id string) (*Employee, error)

	// List all employees, oldest record first.
	List() ([]*Employee, error)

	// Update an existing employee record.
	Update(e *Employee) error

	// Delete an employee record.
	Delete(id string) error
}

// InMemoryStore implements Store using an in-memory map. Thread-safe.
type InMemoryStore struct {
	employees map[string]*Employee
	mu        sync.RWMutex
}

// NewInMemoryStore creates an empty in-memory employee store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		employees: make(map[string]*Employee),
	}
}

// Add stores a new employee, enforcing unique IDs and stamping the record.
func (s *InMemoryStore) Add(e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[e.ID]; exists {
		return fmt.Errorf("employee with ID %s already exists", e.ID)
	}

	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now
	s.employees[e.ID] = e.clone()
	return nil
}

// Get retrieves an employee by ID.
func (s *InMemoryStore) Get(id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, exists := s.employees[id]
	if !exists {
		return nil, fmt.Errorf("employee with ID %s not found", id)
	}
	return e.clone(), nil
}

// List returns all employees ordered by creation time, matching the
// Postgres store's ORDER BY created_at.
func (s *InMemoryStore) List() ([]*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]*Employee, 0, len(s.employees))
	for _, e := range s.employees {
		all = append(all, e.clone())
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}

// Update replaces an existing record, preserving CreatedAt.
func (s *InMemoryStore) Update(e *Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.employees[e.ID]
	if !exists {
		return fmt.Errorf("employee with ID %s not found", e.ID)
	}

	e.CreatedAt = existing.CreatedAt
	e.UpdatedAt = time.Now()
	s.employees[e.ID] = e.clone()
	return nil
}

// Delete removes a record.
func (s *InMemoryStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.employees[id]; !exists {
		return fmt.Errorf("employee with ID %s not found", id)
	}

	delete(s.employees, id)
	return nil
}
