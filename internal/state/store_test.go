package state

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/beqramo/case/internal/mealdb"
)

func meals(n int) []mealdb.Meal {
	out := make([]mealdb.Meal, n)
	for i := range out {
		out[i] = mealdb.Meal{ID: fmt.Sprint(i + 1), Name: fmt.Sprintf("Meal %d", i+1)}
	}
	return out
}

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	s.SetCategories([]mealdb.Category{{Name: "Beef"}})
	gen := s.Begin("Beef", "")
	if !s.Snapshot().Loading {
		t.Fatalf("Loading = false after Begin, want true")
	}

	before := time.Now()
	s.Update(gen, meals(2), nil)

	snap := s.Snapshot()
	if snap.Loading {
		t.Fatalf("Loading = true after Update, want false")
	}
	if snap.Category != "Beef" || snap.Searching() {
		t.Fatalf("Category/Query = %q/%q, want Beef/empty", snap.Category, snap.Query)
	}
	if len(snap.Meals) != 2 || snap.Meals[0].ID != "1" || snap.Page != 1 {
		t.Fatalf("snapshot meals = %#v page %d, want 2 items page 1", snap.Meals, snap.Page)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Meals[0].ID = "999"
	snap.Categories[0].Name = "Pork"
	snap2 := s.Snapshot()
	if snap2.Meals[0].ID != "1" || snap2.Categories[0].Name != "Beef" {
		t.Fatalf("Snapshot should clone slices; got %#v %#v", snap2.Meals[0], snap2.Categories[0])
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update(s.Begin("Beef", ""), meals(1), nil)
	origErr := errors.New("boom")
	s.Update(s.Begin("Chicken", ""), nil, origErr)

	snap := s.Snapshot()
	if len(snap.Meals) != 1 || snap.Meals[0].ID != "1" {
		t.Fatalf("meals changed on error: got %#v", snap.Meals)
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
	if snap.Loading {
		t.Fatalf("Loading = true after failed Update, want false")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	gen := s.Begin("Beef", "")
	s.Fail(gen, errors.New("fail 1"))
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 1 || snap.IsOffline() {
		t.Fatalf("after 1 failure: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Fail(gen, errors.New("fail 2"))
	if snap := s.Snapshot(); !snap.IsOffline() {
		t.Fatalf("IsOffline() = false, want true with 2 failures")
	}

	s.Update(gen, nil, nil)
	if snap := s.Snapshot(); snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("success should reset failures, got %d", snap.ConsecutiveFailures)
	}
}

func TestStore_Pagination(t *testing.T) {
	var s Store
	s.Update(s.Begin("Beef", ""), meals(45), nil)

	if got := len(s.Snapshot().Visible()); got != PageSize {
		t.Fatalf("Visible() = %d meals, want %d", got, PageSize)
	}
	if !s.LoadMore() {
		t.Fatalf("LoadMore() = false on page 1 of 3")
	}
	if got := len(s.Snapshot().Visible()); got != 40 {
		t.Fatalf("Visible() = %d meals, want 40", got)
	}
	if !s.LoadMore() {
		t.Fatalf("LoadMore() = false on page 2 of 3")
	}
	snap := s.Snapshot()
	if len(snap.Visible()) != 45 || snap.HasMore() {
		t.Fatalf("Visible() = %d HasMore=%v, want 45/false", len(snap.Visible()), snap.HasMore())
	}
	if s.LoadMore() {
		t.Fatalf("LoadMore() = true with everything shown")
	}

	// A new listing resets to the first page.
	s.Update(s.Begin("Beef", ""), meals(30), nil)
	if snap := s.Snapshot(); snap.Page != 1 || len(snap.Visible()) != PageSize {
		t.Fatalf("after reload page=%d visible=%d, want 1/%d", snap.Page, len(snap.Visible()), PageSize)
	}
}

func TestStore_DropsStaleGeneration(t *testing.T) {
	var s Store

	search := s.Begin("", "tart")
	category := s.Begin("Beef", "")
	if !s.Update(category, meals(2), nil) {
		t.Fatalf("Update(latest) = false, want true")
	}

	if s.Update(search, []mealdb.Meal{{ID: "99", Name: "Tart"}}, nil) {
		t.Fatalf("Update(stale) = true, want false")
	}
	if s.Fail(search, errors.New("late failure")) {
		t.Fatalf("Fail(stale) = true, want false")
	}

	snap := s.Snapshot()
	if snap.Category != "Beef" || snap.Searching() {
		t.Fatalf("Category/Query = %q/%q, want Beef/empty", snap.Category, snap.Query)
	}
	if len(snap.Meals) != 2 || snap.Meals[0].ID != "1" || snap.LastError != nil {
		t.Fatalf("stale result applied: meals=%#v err=%v", snap.Meals, snap.LastError)
	}
}

func TestStore_StaleResultKeepsLoading(t *testing.T) {
	var s Store

	first := s.Begin("Beef", "")
	s.Begin("Chicken", "")
	s.Update(first, meals(1), nil)

	if snap := s.Snapshot(); !snap.Loading || len(snap.Meals) != 0 {
		t.Fatalf("Loading=%v meals=%d, want newer load still pending", snap.Loading, len(snap.Meals))
	}
}

func TestSnapshot_VisibleOnZeroValue(t *testing.T) {
	var snap Snapshot
	if got := snap.Visible(); len(got) != 0 {
		t.Fatalf("Visible() = %#v, want empty", got)
	}
	if snap.HasMore() {
		t.Fatalf("HasMore() = true on empty snapshot")
	}
}
