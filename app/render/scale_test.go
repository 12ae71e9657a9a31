package render

import (
	"math"
	"strconv"
	"testing"

	"github.com/verdantkitchen/recipe-press/app/recipe"
)

func TestScaleAmountIdentity(t *testing.T) {
	// Identity at the base multiplier, exact string preserved
	for _, amount := range []string{"2", "0.5", "1.25", "3"} {
		if got := ScaleAmount(amount, 4, 4); got != amount {
			t.Errorf("ScaleAmount(%q, 4, 4) = %q, expected the base amount back", amount, got)
		}
	}
}

func TestScaleAmountDoubling(t *testing.T) {
	// 2 cups at 4 servings scaled to 8 yields 4
	if got := ScaleAmount("2", 4, 8); got != "4" {
		t.Errorf(`ScaleAmount("2", 4, 8) = %q, expected "4"`, got)
	}

	// Doubling is monotonic within rounding tolerance
	for _, amount := range []string{"0.33", "1.5", "2.75", "7"} {
		base, _ := strconv.ParseFloat(amount, 64)
		doubled, err := strconv.ParseFloat(ScaleAmount(amount, 4, 8), 64)
		if err != nil {
			t.Fatalf("Scaled amount %q is not numeric", ScaleAmount(amount, 4, 8))
		}
		if math.Abs(doubled-base*2) > 0.01 {
			t.Errorf("Doubling %s: got %v, expected %v", amount, doubled, base*2)
		}
	}
}

func TestScaleAmountRounding(t *testing.T) {
	// 1 at 3 servings scaled to 4 is 1.3333... -> rounded to 1.33
	if got := ScaleAmount("1", 3, 4); got != "1.33" {
		t.Errorf(`ScaleAmount("1", 3, 4) = %q, expected "1.33"`, got)
	}

	// Trailing zeros are trimmed: 0.5 * 2 renders as "1", not "1.00"
	if got := ScaleAmount("0.5", 4, 8); got != "1" {
		t.Errorf(`ScaleAmount("0.5", 4, 8) = %q, expected "1"`, got)
	}
}

func TestScaleAmountNonNumeric(t *testing.T) {
	for _, amount := range []string{"a pinch", "to taste", ""} {
		if got := ScaleAmount(amount, 4, 8); got != amount {
			t.Errorf("Non-numeric amount %q must pass through unchanged, got %q", amount, got)
		}
	}
}

func TestScaleAmountUnusableBase(t *testing.T) {
	if got := ScaleAmount("2", 0, 8); got != "2" {
		t.Errorf("Unusable base servings must not scale, got %q", got)
	}
}

func TestClampServings(t *testing.T) {
	cases := map[int]int{
		-3:  1,
		0:   1,
		1:   1,
		25:  25,
		50:  50,
		51:  50,
		400: 50,
	}
	for input, expected := range cases {
		if got := ClampServings(input); got != expected {
			t.Errorf("ClampServings(%d) = %d, expected %d", input, got, expected)
		}
	}
}

func TestScaleIngredients(t *testing.T) {
	rec := &recipe.Record{
		Servings: recipe.Servings{Yield: 4},
		Ingredients: []recipe.Ingredient{
			{Amount: "2", Unit: "cup", Ingredient: "oats"},
			{Amount: "a pinch", Ingredient: "salt"},
		},
	}

	scaled := ScaleIngredients(rec, 8)
	if scaled[0].Amount != "4" {
		t.Errorf("Expected scaled amount \"4\", got %q", scaled[0].Amount)
	}
	if scaled[1].Amount != "a pinch" {
		t.Errorf("Non-numeric amounts pass through, got %q", scaled[1].Amount)
	}

	// The record itself is never mutated
	if rec.Ingredients[0].Amount != "2" {
		t.Error("ScaleIngredients must not mutate the record")
	}
}
