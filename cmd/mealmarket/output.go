package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/beqramo/case/internal/mealdb"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeCategories(w io.Writer, categories []mealdb.Category) error {
	for _, c := range categories {
		if _, err := fmt.Fprintln(w, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// writeMeals prints one meal per row. isFavorite may be nil.
func writeMeals(w io.Writer, meals []mealdb.Meal, isFavorite func(id string) bool) error {
	if len(meals) == 0 {
		_, err := fmt.Fprintln(w, "No meals found.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tAREA\t")
	for _, m := range meals {
		name := m.Name
		if isFavorite != nil && isFavorite(m.ID) {
			name += " ♥"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t\n", m.ID, name, dash(m.Category), dash(m.Area))
	}
	return tw.Flush()
}

func writeDetail(w io.Writer, d *mealdb.MealDetail, favorite bool) error {
	var b strings.Builder
	b.WriteString(d.Name)
	if favorite {
		b.WriteString(" ♥")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "id %s", d.ID)
	if meta := strings.Join(filterBlank(d.Category, d.Area), " / "); meta != "" {
		fmt.Fprintf(&b, " · %s", meta)
	}
	b.WriteString("\n")
	if tags := d.TagList(); len(tags) > 0 {
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(tags, ", "))
	}

	b.WriteString("\nIngredients\n")
	for _, ing := range d.Ingredients() {
		if measure := strings.TrimSpace(ing.Measure); measure != "" {
			fmt.Fprintf(&b, "  - %s %s\n", measure, ing.Name)
		} else {
			fmt.Fprintf(&b, "  - %s\n", ing.Name)
		}
	}

	if instructions := strings.TrimSpace(d.Instructions); instructions != "" {
		b.WriteString("\nInstructions\n")
		b.WriteString(instructions)
		b.WriteString("\n")
	}
	if d.Youtube != "" {
		fmt.Fprintf(&b, "\nvideo:  %s\n", d.Youtube)
	}
	if d.Source != "" {
		fmt.Fprintf(&b, "source: %s\n", d.Source)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func filterBlank(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
