package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/storage"
)

// StorageKey is the single key the whole collection is stored under.
const StorageKey = "@meal_market_favorites"

// Manager owns the favorites sequence and mediates all reads and writes
// against the store.
type Manager struct {
	store  storage.Store
	logger *zap.Logger

	// mutate serializes read-modify-persist-adopt so concurrent mutations
	// cannot both start from the same snapshot.
	mutate sync.Mutex

	mu        sync.RWMutex
	favorites []mealdb.Meal
}

// NewManager returns an empty Manager over store. A nil logger discards output.
func NewManager(store storage.Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{store: store, logger: logger.Named("favorites")}
}

// Load reads the stored collection and adopts it verbatim. An absent key
// leaves the list unchanged. On failure the previous list is kept and the
// error is logged and returned.
func (m *Manager) Load(ctx context.Context) error {
	m.mutate.Lock()
	defer m.mutate.Unlock()

	m.logger.Debug("loading favorites from storage")
	raw, ok, err := m.store.Get(ctx, StorageKey)
	if err != nil {
		m.logger.Error("load favorites failed", zap.Error(err))
		return fmt.Errorf("load favorites: %w", err)
	}
	if !ok {
		m.logger.Info("no favorites found in storage")
		return nil
	}

	var parsed []mealdb.Meal
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		m.logger.Error("decode favorites failed", zap.Error(err))
		return fmt.Errorf("decode favorites: %w", err)
	}

	m.adopt(parsed)
	m.logger.Info("loaded favorites", zap.Int("count", len(parsed)))
	return nil
}

// IsFavorite reports whether a meal with id is in the list.
func (m *Manager) IsFavorite(id string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return indexOf(m.favorites, id) >= 0
}

// Favorites returns a copy of the list in insertion order.
func (m *Manager) Favorites() []mealdb.Meal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneMeals(m.favorites)
}

// Len returns the number of favorites.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.favorites)
}

// Add appends meal and persists the list. It does not check for an existing
// entry with the same id; callers use IsFavorite or Toggle for that.
func (m *Manager) Add(ctx context.Context, meal mealdb.Meal) error {
	m.mutate.Lock()
	defer m.mutate.Unlock()
	return m.add(ctx, meal)
}

// Remove drops every entry with id and persists the list, even when nothing
// matched.
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mutate.Lock()
	defer m.mutate.Unlock()
	return m.remove(ctx, id)
}

// Toggle removes meal if it is a favorite and adds it otherwise. It returns
// the favorite status after the call.
func (m *Manager) Toggle(ctx context.Context, meal mealdb.Meal) (bool, error) {
	m.mutate.Lock()
	defer m.mutate.Unlock()

	if m.IsFavorite(meal.ID) {
		if err := m.remove(ctx, meal.ID); err != nil {
			return true, err
		}
		return false, nil
	}
	if err := m.add(ctx, meal); err != nil {
		return false, err
	}
	return true, nil
}

func (m *Manager) add(ctx context.Context, meal mealdb.Meal) error {
	current := m.Favorites()
	next := append(current, meal)
	if err := m.save(ctx, next); err != nil {
		return err
	}
	m.logger.Info("added favorite", zap.String("id", meal.ID), zap.String("name", meal.Name))
	return nil
}

func (m *Manager) remove(ctx context.Context, id string) error {
	current := m.Favorites()
	next := make([]mealdb.Meal, 0, len(current))
	for _, meal := range current {
		if meal.ID != id {
			next = append(next, meal)
		}
	}
	if err := m.save(ctx, next); err != nil {
		return err
	}
	m.logger.Info("removed favorite", zap.String("id", id), zap.Int("removed", len(current)-len(next)))
	return nil
}

// save writes next wholesale and adopts it only after the write succeeded.
func (m *Manager) save(ctx context.Context, next []mealdb.Meal) error {
	m.logger.Debug("saving favorites", zap.Int("count", len(next)))
	encoded, err := encode(next)
	if err != nil {
		m.logger.Error("encode favorites failed", zap.Error(err))
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := m.store.Set(ctx, StorageKey, encoded); err != nil {
		m.logger.Error("save favorites failed", zap.Error(err))
		return fmt.Errorf("save favorites: %w", err)
	}
	m.adopt(next)
	return nil
}

func (m *Manager) adopt(next []mealdb.Meal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.favorites = next
}

// encode serializes the list; an empty list is "[]", never "null".
func encode(meals []mealdb.Meal) (string, error) {
	if meals == nil {
		meals = []mealdb.Meal{}
	}
	data, err := json.Marshal(meals)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func indexOf(meals []mealdb.Meal, id string) int {
	for i, meal := range meals {
		if meal.ID == id {
			return i
		}
	}
	return -1
}

func cloneMeals(meals []mealdb.Meal) []mealdb.Meal {
	if len(meals) == 0 {
		return nil
	}
	dup := make([]mealdb.Meal, len(meals))
	copy(dup, meals)
	return dup
}
