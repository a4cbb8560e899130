package favorites

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/storage"
)

var (
	mealA = mealdb.Meal{ID: "1", Name: "A", Thumb: "https://img/a.jpg", Category: "Beef"}
	mealB = mealdb.Meal{ID: "2", Name: "B", Thumb: "https://img/b.jpg", Area: "Italian"}
	mealC = mealdb.Meal{ID: "3", Name: "C", Thumb: "https://img/c.jpg"}
)

func newManager(t *testing.T) (*Manager, *storage.MemoryStore, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	store := storage.NewMemoryStore()
	return NewManager(store, zap.New(core)), store, logs
}

func ids(meals []mealdb.Meal) []string {
	out := make([]string, 0, len(meals))
	for _, m := range meals {
		out = append(out, m.ID)
	}
	return out
}

func TestManager_Scenario(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	require.NoError(t, m.Add(ctx, mealA))
	assert.Equal(t, []string{"1"}, ids(m.Favorites()))

	require.NoError(t, m.Add(ctx, mealB))
	assert.Equal(t, []string{"1", "2"}, ids(m.Favorites()))

	require.NoError(t, m.Remove(ctx, "1"))
	assert.Equal(t, []string{"2"}, ids(m.Favorites()))

	fav, err := m.Toggle(ctx, mealB)
	require.NoError(t, err)
	assert.False(t, fav)
	assert.Empty(t, m.Favorites())
}

func TestManager_IsFavoriteFollowsMutations(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	assert.False(t, m.IsFavorite("1"))
	require.NoError(t, m.Add(ctx, mealA))
	assert.True(t, m.IsFavorite("1"))
	require.NoError(t, m.Remove(ctx, "1"))
	assert.False(t, m.IsFavorite("1"))
}

func TestManager_SurvivingIDsInCallOrder(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	require.NoError(t, m.Add(ctx, mealC))
	require.NoError(t, m.Add(ctx, mealA))
	require.NoError(t, m.Add(ctx, mealB))
	require.NoError(t, m.Remove(ctx, "1"))
	require.NoError(t, m.Add(ctx, mealA))

	assert.Equal(t, []string{"3", "2", "1"}, ids(m.Favorites()))
	assert.Equal(t, 3, m.Len())
}

func TestManager_ToggleIsItsOwnInverse(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)
	require.NoError(t, m.Add(ctx, mealA))
	before := m.Favorites()

	for _, meal := range []mealdb.Meal{mealA, mealB} {
		_, err := m.Toggle(ctx, meal)
		require.NoError(t, err)
		_, err = m.Toggle(ctx, meal)
		require.NoError(t, err)

		if diff := cmp.Diff(before, m.Favorites()); diff != "" {
			t.Fatalf("favorites after double toggle of %s (-want +got):\n%s", meal.ID, diff)
		}
	}
}

func TestManager_RoundTripThroughFreshInstance(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()

	first := NewManager(store, nil)
	require.NoError(t, first.Add(ctx, mealA))
	require.NoError(t, first.Add(ctx, mealB))
	require.NoError(t, first.Add(ctx, mealC))

	second := NewManager(store, nil)
	require.NoError(t, second.Load(ctx))

	if diff := cmp.Diff(first.Favorites(), second.Favorites()); diff != "" {
		t.Fatalf("reloaded favorites differ (-want +got):\n%s", diff)
	}
}

func TestManager_LoadWithoutStoredValueIsEmpty(t *testing.T) {
	m, store, logs := newManager(t)

	require.NoError(t, m.Load(context.Background()))
	assert.Empty(t, m.Favorites())
	assert.Equal(t, 0, store.Sets(), "load must not write back")
	assert.Equal(t, 1, logs.FilterMessage("no favorites found in storage").Len())
}

func TestManager_LoadAdoptsStoredValueVerbatim(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)
	require.NoError(t, store.Set(ctx, StorageKey,
		`[{"idMeal":"1","strMeal":"A","strMealThumb":"x"},{"idMeal":"1","strMeal":"A again","strMealThumb":"y"}]`))

	require.NoError(t, m.Load(ctx))
	assert.Equal(t, []string{"1", "1"}, ids(m.Favorites()))

	// Removal drops every duplicate.
	require.NoError(t, m.Remove(ctx, "1"))
	assert.Empty(t, m.Favorites())
}

func TestManager_LoadFailureKeepsPreviousState(t *testing.T) {
	ctx := context.Background()
	m, store, logs := newManager(t)
	require.NoError(t, m.Add(ctx, mealA))

	require.NoError(t, store.Set(ctx, StorageKey, `{not json`))
	err := m.Load(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode favorites")
	assert.Equal(t, []string{"1"}, ids(m.Favorites()))

	boom := errors.New("storage unavailable")
	store.FailGet(boom)
	err = m.Load(ctx)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"1"}, ids(m.Favorites()))

	assert.Equal(t, 2, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestManager_FailedPersistIsNotAdopted(t *testing.T) {
	ctx := context.Background()
	m, store, logs := newManager(t)
	require.NoError(t, m.Add(ctx, mealA))

	boom := errors.New("quota exceeded")
	store.FailSet(boom)

	assert.ErrorIs(t, m.Add(ctx, mealB), boom)
	assert.ErrorIs(t, m.Remove(ctx, "1"), boom)
	fav, err := m.Toggle(ctx, mealA)
	assert.ErrorIs(t, err, boom)
	assert.True(t, fav, "failed toggle reports unchanged status")

	assert.Equal(t, []string{"1"}, ids(m.Favorites()))
	assert.Equal(t, 3, logs.FilterMessage("save favorites failed").Len())

	// Durable state matches memory.
	store.FailSet(nil)
	fresh := NewManager(store, nil)
	require.NoError(t, fresh.Load(ctx))
	assert.Equal(t, ids(m.Favorites()), ids(fresh.Favorites()))
}

func TestManager_RemoveAbsentStillWrites(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)
	require.NoError(t, m.Add(ctx, mealA))
	writes := store.Sets()

	require.NoError(t, m.Remove(ctx, "missing"))
	assert.Equal(t, []string{"1"}, ids(m.Favorites()))
	assert.Equal(t, writes+1, store.Sets())
}

func TestManager_PersistsDeterministicJSON(t *testing.T) {
	ctx := context.Background()
	m, store, _ := newManager(t)

	require.NoError(t, m.Add(ctx, mealA))
	require.NoError(t, m.Remove(ctx, "1"))
	raw, ok, err := store.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[]`, raw)

	require.NoError(t, m.Add(ctx, mealB))
	raw, _, err = store.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"idMeal":"2","strMeal":"B","strMealThumb":"https://img/b.jpg","strArea":"Italian"}]`, raw)
}

func TestManager_ConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	m, _, _ := newManager(t)

	meals := make([]mealdb.Meal, 50)
	for i := range meals {
		meals[i] = mealdb.Meal{ID: string(rune('a' + i%26)) + string(rune('A'+i/26)), Name: "meal"}
	}

	var wg sync.WaitGroup
	for _, meal := range meals {
		wg.Add(1)
		go func(meal mealdb.Meal) {
			defer wg.Done()
			_, err := m.Toggle(ctx, meal)
			assert.NoError(t, err)
		}(meal)
	}
	wg.Wait()

	got := ids(m.Favorites())
	want := ids(meals)
	if diff := cmp.Diff(want, got, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Fatalf("favorites after concurrent toggles (-want +got):\n%s", diff)
	}

	// A double tap on the same meal ends where it started.
	var pair sync.WaitGroup
	for i := 0; i < 2; i++ {
		pair.Add(1)
		go func() {
			defer pair.Done()
			_, _ = m.Toggle(ctx, meals[0])
		}()
	}
	pair.Wait()
	assert.True(t, m.IsFavorite(meals[0].ID))
	assert.Equal(t, len(meals), m.Len())
}
