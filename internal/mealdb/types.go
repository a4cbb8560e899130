package mealdb

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// MaxIngredients is the number of ingredient/measure slots a recipe carries.
const MaxIngredients = 20

// Category mirrors one entry of /list.php?c=list.
type Category struct {
	Name string `json:"strCategory"`
}

// Meal is the summary record used in listings and the favorites list.
type Meal struct {
	ID       string `json:"idMeal"`
	Name     string `json:"strMeal"`
	Thumb    string `json:"strMealThumb"`
	Category string `json:"strCategory,omitempty"`
	Area     string `json:"strArea,omitempty"`
}

// IngredientSlot is one optional (name, measure) pair of a recipe.
type IngredientSlot struct {
	Name    string
	Measure string
}

// Present reports whether the slot holds an ingredient.
func (s IngredientSlot) Present() bool {
	return strings.TrimSpace(s.Name) != ""
}

// MealDetail is the full recipe record returned by lookup and search.
type MealDetail struct {
	Meal
	Instructions string `json:"strInstructions,omitempty"`
	Tags         string `json:"strTags,omitempty"`
	Youtube      string `json:"strYoutube,omitempty"`
	Source       string `json:"strSource,omitempty"`

	Slots [MaxIngredients]IngredientSlot `json:"-"`
}

// Summary projects the detail onto the summary record.
func (d MealDetail) Summary() Meal {
	return d.Meal
}

// Ingredients returns the present slots in slot order.
func (d MealDetail) Ingredients() []IngredientSlot {
	var out []IngredientSlot
	for _, slot := range d.Slots {
		if slot.Present() {
			out = append(out, slot)
		}
	}
	return out
}

// TagList splits the comma separated strTags field.
func (d MealDetail) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(d.Tags, ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return tags
}

// UnmarshalJSON decodes the flat strIngredientN/strMeasureN fields into Slots.
// The API sends null for unused slots and for several optional fields.
func (d *MealDetail) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	str := func(key string) string {
		switch v := raw[key].(type) {
		case string:
			return v
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return ""
		}
	}

	*d = MealDetail{
		Meal: Meal{
			ID:       str("idMeal"),
			Name:     str("strMeal"),
			Thumb:    str("strMealThumb"),
			Category: str("strCategory"),
			Area:     str("strArea"),
		},
		Instructions: str("strInstructions"),
		Tags:         str("strTags"),
		Youtube:      str("strYoutube"),
		Source:       str("strSource"),
	}
	for i := range d.Slots {
		d.Slots[i] = IngredientSlot{
			Name:    str(fmt.Sprintf("strIngredient%d", i+1)),
			Measure: str(fmt.Sprintf("strMeasure%d", i+1)),
		}
	}
	return nil
}

// MarshalJSON writes the API's flat layout back out.
func (d MealDetail) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"idMeal":       d.ID,
		"strMeal":      d.Name,
		"strMealThumb": d.Thumb,
	}
	optional := map[string]string{
		"strCategory":     d.Category,
		"strArea":         d.Area,
		"strInstructions": d.Instructions,
		"strTags":         d.Tags,
		"strYoutube":      d.Youtube,
		"strSource":       d.Source,
	}
	for k, v := range optional {
		if v != "" {
			out[k] = v
		}
	}
	for i, slot := range d.Slots {
		if slot.Name == "" && slot.Measure == "" {
			continue
		}
		out[fmt.Sprintf("strIngredient%d", i+1)] = slot.Name
		out[fmt.Sprintf("strMeasure%d", i+1)] = slot.Measure
	}
	return json.Marshal(out)
}

// categoriesResponse is the envelope of /list.php?c=list.
type categoriesResponse struct {
	Meals []Category `json:"meals"`
}

type mealsResponse struct {
	Meals []Meal `json:"meals"`
}

type detailsResponse struct {
	Meals []MealDetail `json:"meals"`
}
