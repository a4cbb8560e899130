package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/state"
)

// Loader fetches listings from the provider into the shared state store.
// Provider failures are logged and recorded in the snapshot; the previous
// listing stays visible. A result that arrives after a newer load has begun
// is dropped.
type Loader struct {
	provider mealdb.Provider
	store    *state.Store
	logger   *zap.Logger
}

// NewLoader wires a Loader. A nil logger discards output.
func NewLoader(provider mealdb.Provider, store *state.Store, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{provider: provider, store: store, logger: logger.Named("loader")}
}

// Init loads the category list and then the meals of preferred, or of the
// first category when preferred is not in the list.
func (l *Loader) Init(ctx context.Context, preferred string) error {
	l.logger.Info("loading initial data")
	prev := l.store.Snapshot()
	gen := l.store.Begin(prev.Category, prev.Query)
	categories, err := l.provider.Categories(ctx)
	if err != nil {
		l.logger.Error("fetch categories failed", zap.Error(err))
		if !l.store.Fail(gen, err) {
			return nil
		}
		return fmt.Errorf("fetch categories: %w", err)
	}
	l.store.SetCategories(categories)
	l.logger.Info("categories received", zap.Int("count", len(categories)))

	if len(categories) == 0 {
		l.store.Update(gen, nil, nil)
		return nil
	}
	selected := categories[0].Name
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(preferred)) {
			selected = c.Name
			break
		}
	}
	return l.SelectCategory(ctx, selected)
}

// SelectCategory loads the meals of category and clears any search.
func (l *Loader) SelectCategory(ctx context.Context, category string) error {
	l.logger.Info("category selected", zap.String("category", category))
	gen := l.store.Begin(category, "")
	meals, err := l.provider.MealsByCategory(ctx, category)
	if err != nil {
		l.logger.Error("fetch meals by category failed", zap.String("category", category), zap.Error(err))
		if !l.store.Fail(gen, err) {
			l.logger.Debug("discarding stale listing", zap.String("category", category))
			return nil
		}
		return fmt.Errorf("fetch %s meals: %w", category, err)
	}
	l.logger.Info("meals received", zap.String("category", category), zap.Int("count", len(meals)))
	if !l.store.Update(gen, meals, nil) {
		l.logger.Debug("discarding stale listing", zap.String("category", category))
	}
	return nil
}

// Search replaces the listing with meals matching query. A blank query
// returns to the selected category.
func (l *Loader) Search(ctx context.Context, query string) error {
	category := l.store.Snapshot().Category
	if strings.TrimSpace(query) == "" {
		if category == "" {
			return nil
		}
		return l.SelectCategory(ctx, category)
	}

	l.logger.Info("searching meals", zap.String("query", query))
	gen := l.store.Begin(category, query)
	found, err := l.provider.Search(ctx, query)
	if err != nil {
		l.logger.Error("search meals failed", zap.String("query", query), zap.Error(err))
		if !l.store.Fail(gen, err) {
			l.logger.Debug("discarding stale search", zap.String("query", query))
			return nil
		}
		return fmt.Errorf("search %q: %w", query, err)
	}
	l.logger.Info("search results", zap.String("query", query), zap.Int("count", len(found)))
	if !l.store.Update(gen, Summaries(found), nil) {
		l.logger.Debug("discarding stale search", zap.String("query", query))
	}
	return nil
}

// Refresh re-runs the current search, or reloads the selected category.
func (l *Loader) Refresh(ctx context.Context) error {
	snap := l.store.Snapshot()
	l.logger.Debug("refresh triggered", zap.String("category", snap.Category), zap.String("query", snap.Query))
	if snap.Searching() {
		return l.Search(ctx, snap.Query)
	}
	if snap.Category != "" {
		return l.SelectCategory(ctx, snap.Category)
	}
	return l.Init(ctx, "")
}

// Detail fetches the full record for id.
func (l *Loader) Detail(ctx context.Context, id string) (*mealdb.MealDetail, error) {
	l.logger.Info("loading meal details", zap.String("id", id))
	detail, err := l.provider.Lookup(ctx, id)
	if err != nil {
		l.logger.Error("fetch meal details failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return detail, nil
}

// Summaries projects full records onto summaries.
func Summaries(details []mealdb.MealDetail) []mealdb.Meal {
	out := make([]mealdb.Meal, 0, len(details))
	for _, d := range details {
		out = append(out, d.Summary())
	}
	return out
}
