package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/verdantkitchen/recipe-press/app/recipe"
)

// Servings scaling backs the servings adjuster. The computation is
// identity at the base multiplier and clamps the target to [1, 50].

const (
	MinServings = 1
	MaxServings = 50
)

// ClampServings bounds a requested servings count to [MinServings, MaxServings].
func ClampServings(n int) int {
	if n < MinServings {
		return MinServings
	}
	if n > MaxServings {
		return MaxServings
	}
	return n
}

// ScaleAmount scales a base-servings ingredient amount to the target
// servings count, rounded to two decimals with trailing zeros trimmed.
// Non-numeric amounts ("a pinch") are returned unchanged, as are all
// amounts when the base servings count is unusable.
func ScaleAmount(baseAmount string, baseServings, targetServings int) string {
	if baseServings <= 0 {
		return baseAmount
	}

	base, err := strconv.ParseFloat(strings.TrimSpace(baseAmount), 64)
	if err != nil {
		return baseAmount
	}

	targetServings = ClampServings(targetServings)
	if targetServings == baseServings {
		return baseAmount
	}

	multiplier := float64(targetServings) / float64(baseServings)
	scaled := math.Round(base*multiplier*100) / 100

	return strconv.FormatFloat(scaled, 'f', -1, 64)
}

// ScaleIngredients returns a copy of the record's ingredients with
// amounts scaled to the target servings count. The record is not
// mutated.
func ScaleIngredients(rec *recipe.Record, targetServings int) []recipe.Ingredient {
	scaled := make([]recipe.Ingredient, len(rec.Ingredients))
	for i, ing := range rec.Ingredients {
		ing.Amount = ScaleAmount(ing.Amount, rec.Servings.Yield, targetServings)
		scaled[i] = ing
	}
	return scaled
}
