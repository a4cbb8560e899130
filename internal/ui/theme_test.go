package ui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/beqramo/case/internal/mealdb"
)

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 || names[0] != "Nightfox" || names[1] != "Kanagawa" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Nightfox Kanagawa Slate]", names)
	}
	names[0] = "mutated"
	if ThemeNames()[0] != "Nightfox" {
		t.Fatalf("ThemeNames returned shared slice")
	}
}

func TestNextTheme(t *testing.T) {
	cases := map[string]string{
		"Nightfox": "Kanagawa",
		"kanagawa": "Slate",
		"Slate":    "Nightfox",
		"Unknown":  "Nightfox",
	}
	for in, want := range cases {
		if got := NextTheme(in); got != want {
			t.Fatalf("NextTheme(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme(" slate ").Name; got != "Slate" {
		t.Fatalf("GetTheme(slate).Name = %q, want Slate", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox (fallback)", got)
	}
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		if th.Favorite == "" || th.Accent == "" || th.Text == "" {
			t.Fatalf("theme %s has empty colors: %#v", name, th)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  Beef Wellington ", 7); got != "Beef..." {
		t.Fatalf("truncate = %q, want Beef...", got)
	}
	if got := truncate("Pie", 10); got != "Pie" {
		t.Fatalf("truncate short = %q, want Pie", got)
	}
	if got := truncate("Crème brûlée", 2); got != "Cr" {
		t.Fatalf("truncate limit<=3 = %q, want Cr", got)
	}
}

func TestPadRightAndNonEmpty(t *testing.T) {
	if got := padRight("Tart", 6); got != "Tart  " {
		t.Fatalf("padRight = %q", got)
	}
	if got := padRight("Tartiflette", 4); got != "Tartiflette" {
		t.Fatalf("padRight long = %q", got)
	}
	got := nonEmpty("Dessert", " ", "", "French")
	if len(got) != 2 || got[0] != "Dessert" || got[1] != "French" {
		t.Fatalf("nonEmpty = %#v", got)
	}
}

func TestClassifyError(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{fmt.Errorf("lookup: %w", mealdb.ErrNotFound), "NOT FOUND"},
		{fmt.Errorf("execute request: %w", context.DeadlineExceeded), "TIMEOUT"},
		{errors.New("dial tcp 127.0.0.1:80: connect: connection refused"), "OFFLINE"},
		{errors.New("dial tcp: lookup www.themealdb.com: no such host"), "HOST NOT FOUND"},
		{errors.New("api search.php returned status 500"), "API ERROR"},
		{errors.New("boom"), "ERROR"},
	}
	for _, tc := range cases {
		if got := classifyError(tc.err); got != tc.want {
			t.Fatalf("classifyError(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
