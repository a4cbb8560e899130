// Package mealdb provides an HTTP client for TheMealDB public recipe API.
//
// # Overview
//
// The package covers the four read-only query shapes mealmarket needs and the
// record types that come back from them:
//
//   - client.go: HTTP client implementation and request/response handling
//   - types.go: Category, Meal (summary), MealDetail and ingredient slots
//
// # Client Usage
//
//	client, err := mealdb.NewClient("", 10*time.Second) // TheMealDB v1, key 1
//	if err != nil {
//		log.Fatalf("failed to create client: %v", err)
//	}
//
//	cats, err := client.Categories(ctx)
//	meals, err := client.MealsByCategory(ctx, "Seafood")
//	found, err := client.Search(ctx, "arrabiata")
//	detail, err := client.Lookup(ctx, "52771")
//
// # API Endpoints
//
//   - GET list.php?c=list: category names
//   - GET filter.php?c=<category>: meal summaries in a category
//   - GET search.php?s=<term>: full meal records matching a name
//   - GET lookup.php?i=<id>: one full meal record
//
// Every endpoint answers with a {"meals": [...]} envelope. The API sends
// "meals": null when nothing matches; the client turns that into an empty
// slice (and ErrNotFound for Lookup).
//
// # Error Handling
//
// Transport failures, HTTP status >= 400 and malformed JSON are returned as
// wrapped errors:
//
//   - "execute request: dial tcp: connection refused"
//   - "api filter.php returned status 500"
//   - "decode response: unexpected end of JSON input"
//
// The client does not swallow failures. Callers decide whether a failure is
// shown as an empty list (the UI does) or reported (the CLI does).
//
// # Ingredient Slots
//
// Recipes carry up to MaxIngredients (ingredient, measure) pairs that the API
// flattens into strIngredient1..20 and strMeasure1..20. MealDetail decodes
// them into a fixed array of IngredientSlot values. A slot counts as present
// only if its name is non-blank after trimming; Ingredients returns the
// present slots in order.
//
// # Thread Safety
//
// Client is safe for concurrent use. Identical in-flight requests (same URL)
// are collapsed into one HTTP call with singleflight.
package mealdb
