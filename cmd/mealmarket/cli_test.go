package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beqramo/case/internal/config"
	"github.com/beqramo/case/internal/mealdb"
	"github.com/beqramo/case/internal/prefs"
)

const lookupArrabiata = `{"meals":[{
	"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strMealThumb":"https://example.test/penne.jpg",
	"strCategory":"Vegetarian","strArea":"Italian","strTags":"Pasta,Curry",
	"strInstructions":"Bring a large pot of water to a boil.",
	"strYoutube":"https://www.youtube.com/watch?v=1IszT_guI08","strSource":null,
	"strIngredient1":"penne rigate","strMeasure1":"1 pound",
	"strIngredient2":"olive oil","strMeasure2":"1/4 cup",
	"strIngredient3":"","strMeasure3":" ",
	"strIngredient4":null,"strMeasure4":null
}]}`

func newAPI(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case strings.HasSuffix(r.URL.Path, "/list.php"):
			_, _ = w.Write([]byte(`{"meals":[{"strCategory":"Beef"},{"strCategory":"Vegetarian"}]}`))
		case strings.HasSuffix(r.URL.Path, "/filter.php") && q.Get("c") == "Vegetarian":
			_, _ = w.Write([]byte(`{"meals":[{"idMeal":"52771","strMeal":"Spicy Arrabiata Penne","strMealThumb":"t"}]}`))
		case strings.HasSuffix(r.URL.Path, "/search.php") && q.Get("s") == "penne":
			_, _ = w.Write([]byte(lookupArrabiata))
		case strings.HasSuffix(r.URL.Path, "/lookup.php") && q.Get("i") == "52771":
			_, _ = w.Write([]byte(lookupArrabiata))
		default:
			_, _ = w.Write([]byte(`{"meals":null}`))
		}
	}))
	t.Cleanup(server.Close)
	return server
}

// setup writes a config pointing at a fake API and returns the flags to
// pass to every invocation.
func setup(t *testing.T) []string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	server := newAPI(t)

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "api_base = \"" + server.URL + "\"\n" +
		"data_dir = \"" + filepath.Join(dir, "data") + "\"\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))

	return []string{"--config", cfgPath, "--prefs", filepath.Join(dir, "prefs.toml")}
}

func execute(t *testing.T, flags []string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(append([]string{}, args...), flags...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCategoriesAndMeals(t *testing.T) {
	flags := setup(t)

	out, err := execute(t, flags, "categories")
	require.NoError(t, err)
	assert.Equal(t, "Beef\nVegetarian\n", out)

	out, err = execute(t, flags, "meals", "Vegetarian")
	require.NoError(t, err)
	assert.Contains(t, out, "52771")
	assert.Contains(t, out, "Spicy Arrabiata Penne")
	assert.Contains(t, out, "Vegetarian")

	out, err = execute(t, flags, "meals", "Nothing")
	require.NoError(t, err)
	assert.Equal(t, "No meals found.\n", out)

	_, err = execute(t, flags, "meals")
	assert.Error(t, err)
}

func TestShowPrintsIngredients(t *testing.T) {
	flags := setup(t)

	out, err := execute(t, flags, "show", "52771")
	require.NoError(t, err)
	assert.Contains(t, out, "Spicy Arrabiata Penne")
	assert.Contains(t, out, "Vegetarian / Italian")
	assert.Contains(t, out, "tags: Pasta, Curry")
	assert.Contains(t, out, "  - 1 pound penne rigate\n  - 1/4 cup olive oil\n")
	assert.NotContains(t, out, "source:")

	_, err = execute(t, flags, "show", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, mealdb.ErrNotFound)
}

func TestSearchJSON(t *testing.T) {
	flags := setup(t)

	out, err := execute(t, flags, "search", "penne", "--json")
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "52771", decoded[0]["idMeal"])
	assert.Equal(t, "penne rigate", decoded[0]["strIngredient1"])
}

func TestFavoritesLifecycle(t *testing.T) {
	flags := setup(t)

	out, err := execute(t, flags, "favorites", "list")
	require.NoError(t, err)
	assert.Equal(t, "No favorites yet.\n", out)

	out, err = execute(t, flags, "favorites", "add", "52771")
	require.NoError(t, err)
	assert.Equal(t, "Added Spicy Arrabiata Penne\n", out)

	out, err = execute(t, flags, "favorites", "add", "52771")
	require.NoError(t, err)
	assert.Contains(t, out, "already a favorite")

	out, err = execute(t, flags, "favorites", "list", "--json")
	require.NoError(t, err)
	var saved []mealdb.Meal
	require.NoError(t, json.Unmarshal([]byte(out), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, mealdb.Meal{
		ID:       "52771",
		Name:     "Spicy Arrabiata Penne",
		Thumb:    "https://example.test/penne.jpg",
		Category: "Vegetarian",
		Area:     "Italian",
	}, saved[0])

	out, err = execute(t, flags, "meals", "Vegetarian")
	require.NoError(t, err)
	assert.Contains(t, out, "Spicy Arrabiata Penne ♥")

	out, err = execute(t, flags, "fav", "toggle", "52771")
	require.NoError(t, err)
	assert.Equal(t, "Removed Spicy Arrabiata Penne\n", out)

	out, err = execute(t, flags, "favorites", "remove", "52771")
	require.NoError(t, err)
	assert.Equal(t, "52771 is not a favorite\n", out)

	_, err = execute(t, flags, "favorites", "add", "404")
	assert.ErrorIs(t, err, mealdb.ErrNotFound)

	out, err = execute(t, flags, "favorites", "list", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestLogsShowsFailures(t *testing.T) {
	flags := setup(t)

	_, err := execute(t, flags, "show", "404")
	require.Error(t, err)

	out, err := execute(t, flags, "logs", "--level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "command failed")
	assert.Contains(t, out, "command=mealmarket show")

	_, err = execute(t, flags, "logs", "--level", "loud")
	assert.Error(t, err)
}

func TestRootFlagsShowDefaultPaths(t *testing.T) {
	root := newRootCmd()
	assert.Contains(t, root.PersistentFlags().Lookup("config").Usage, config.DefaultPath())
	assert.Contains(t, root.PersistentFlags().Lookup("prefs").Usage, prefs.DefaultPath())
}
