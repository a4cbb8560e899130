package state

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/beqramo/case/internal/mealdb"
)

// PageSize is the number of meals revealed per page.
const PageSize = 20

// Snapshot represents the latest listing available to the UI.
type Snapshot struct {
	Categories          []mealdb.Category
	Category            string // selected category
	Query               string // non-empty while showing search results
	Meals               []mealdb.Meal
	Page                int
	Loading             bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// Searching reports whether the listing holds search results.
func (s Snapshot) Searching() bool {
	return strings.TrimSpace(s.Query) != ""
}

// Visible returns the meals revealed by the current page.
func (s Snapshot) Visible() []mealdb.Meal {
	end := s.Page * PageSize
	if end <= 0 {
		end = PageSize
	}
	if end > len(s.Meals) {
		end = len(s.Meals)
	}
	return s.Meals[:end]
}

// HasMore reports whether LoadMore would reveal more meals.
func (s Snapshot) HasMore() bool {
	return len(s.Visible()) < len(s.Meals)
}

// IsOffline returns true when the API has failed several times in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu         sync.RWMutex
	snapshot   Snapshot
	generation uint64
}

// SetCategories replaces the category list.
func (s *Store) SetCategories(categories []mealdb.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot.Categories = append([]mealdb.Category(nil), categories...)
}

// Begin marks a listing load for category/query as in flight and returns its
// generation. Only the result of the latest generation is applied.
func (s *Store) Begin(category, query string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	s.snapshot.Category = category
	s.snapshot.Query = query
	s.snapshot.Loading = true
	return s.generation
}

// Update replaces the listing loaded by generation gen. When err is non-nil
// the previous meals are kept but the error is recorded for visibility.
// It returns false and changes nothing when a newer load has begun.
func (s *Store) Update(gen uint64, meals []mealdb.Meal, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.snapshot.Loading = false
	s.snapshot.LastUpdated = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	s.snapshot.Meals = cloneMeals(meals)
	s.snapshot.Page = 1
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Fail records an error for generation gen without touching the listing.
func (s *Store) Fail(gen uint64, err error) bool {
	return s.Update(gen, nil, err)
}

// LoadMore reveals the next page. It returns false when everything is shown.
func (s *Store) LoadMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.snapshot.HasMore() {
		return false
	}
	s.snapshot.Page++
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Meals = cloneMeals(s.snapshot.Meals)
	snap.Categories = append([]mealdb.Category(nil), s.snapshot.Categories...)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneMeals(items []mealdb.Meal) []mealdb.Meal {
	if len(items) == 0 {
		return nil
	}
	dup := make([]mealdb.Meal, len(items))
	copy(dup, items)
	return dup
}
