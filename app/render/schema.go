package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
)

// Schema projection: deterministic mapping from a Recipe Record to the
// JSON-LD objects embedded in each page for search engines. Every field
// is a direct mapping or simple string formatting; no external lookups.

type RecipeSchema struct {
	Context        string   `json:"@context"`
	Type           string   `json:"@type"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Author         Person   `json:"author"`
	DatePublished  string   `json:"datePublished,omitempty"`
	DateModified   string   `json:"dateModified,omitempty"`
	Image          string   `json:"image,omitempty"`
	PrepTime       string   `json:"prepTime,omitempty"`
	CookTime       string   `json:"cookTime,omitempty"`
	TotalTime      string   `json:"totalTime,omitempty"`
	RecipeYield    string   `json:"recipeYield,omitempty"`
	RecipeCategory []string `json:"recipeCategory,omitempty"`
	Keywords       string   `json:"keywords,omitempty"`

	Nutrition          *NutritionInformation `json:"nutrition,omitempty"`
	RecipeIngredient   []string              `json:"recipeIngredient"`
	RecipeInstructions []HowToStep           `json:"recipeInstructions"`

	// Emitted only when the record carries explicit rating data.
	AggregateRating *AggregateRating `json:"aggregateRating,omitempty"`
}

type Person struct {
	Type     string `json:"@type"`
	Name     string `json:"name"`
	JobTitle string `json:"jobTitle,omitempty"`
}

type NutritionInformation struct {
	Type                string `json:"@type"`
	Calories            string `json:"calories,omitempty"`
	ProteinContent      string `json:"proteinContent,omitempty"`
	CarbohydrateContent string `json:"carbohydrateContent,omitempty"`
	FatContent          string `json:"fatContent,omitempty"`
	FiberContent        string `json:"fiberContent,omitempty"`
	SugarContent        string `json:"sugarContent,omitempty"`
}

type HowToStep struct {
	Type  string `json:"@type"`
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

type AggregateRating struct {
	Type        string  `json:"@type"`
	RatingValue float64 `json:"ratingValue"`
	RatingCount int     `json:"ratingCount"`
}

type BreadcrumbSchema struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	ItemListElement []BreadcrumbItem `json:"itemListElement"`
}

type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item"`
}

// AbsoluteImageURL normalizes either image shape to an absolute URL by
// prefixing the site origin. Already-absolute sources pass through.
// Every caller that needs an absolute image URL goes through here.
func AbsoluteImageURL(img recipe.Image, site *config.Site) string {
	src := img.Src
	if src == "" {
		return ""
	}
	if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
		return src
	}
	return site.Origin() + "/" + strings.TrimLeft(src, "/")
}

// CanonicalURL returns the record's canonical page URL, preferring an
// explicit seo.canonicalUrl over the derived /recipes/<slug> path.
func CanonicalURL(rec *recipe.Record, site *config.Site) string {
	if rec.SEO.CanonicalURL != "" {
		return rec.SEO.CanonicalURL
	}
	return fmt.Sprintf("%s/recipes/%s", site.Origin(), rec.Slug)
}

// ProjectRecipeSchema builds the JSON-LD Recipe object for rec.
func ProjectRecipeSchema(rec *recipe.Record, site *config.Site) RecipeSchema {
	schema := RecipeSchema{
		Context:        "https://schema.org",
		Type:           "Recipe",
		Name:           rec.Title,
		Description:    rec.Description,
		Author:         projectAuthor(rec, site),
		DatePublished:  rec.DatePublished,
		DateModified:   rec.DateModified,
		Image:          AbsoluteImageURL(rec.Image.Hero, site),
		PrepTime:       rec.Timing.PrepTime,
		CookTime:       rec.Timing.CookTime,
		TotalTime:      rec.Timing.TotalTime,
		RecipeCategory: rec.Categories,
		Keywords:       strings.Join(rec.Tags, ", "),
	}

	if rec.Servings.Yield > 0 {
		schema.RecipeYield = fmt.Sprintf("%d %s", rec.Servings.Yield, rec.Servings.Unit)
	}

	if rec.Nutrition != (recipe.Nutrition{}) {
		schema.Nutrition = &NutritionInformation{
			Type:                "NutritionInformation",
			Calories:            rec.Nutrition.Calories,
			ProteinContent:      rec.Nutrition.Protein,
			CarbohydrateContent: rec.Nutrition.Carbs,
			FatContent:          rec.Nutrition.Fat,
			FiberContent:        rec.Nutrition.Fiber,
			SugarContent:        rec.Nutrition.Sugar,
		}
	}

	schema.RecipeIngredient = make([]string, 0, len(rec.Ingredients))
	for _, ing := range rec.Ingredients {
		schema.RecipeIngredient = append(schema.RecipeIngredient, FormatIngredient(ing))
	}

	schema.RecipeInstructions = make([]HowToStep, 0, len(rec.Instructions))
	for _, step := range rec.Instructions {
		howTo := HowToStep{Type: "HowToStep", Text: step.Text}
		if step.Image != nil && step.Image.Usable() {
			howTo.Image = AbsoluteImageURL(*step.Image, site)
		}
		schema.RecipeInstructions = append(schema.RecipeInstructions, howTo)
	}

	if rec.Rating != nil {
		schema.AggregateRating = &AggregateRating{
			Type:        "AggregateRating",
			RatingValue: rec.Rating.Value,
			RatingCount: rec.Rating.Count,
		}
	}

	return schema
}

// ProjectBreadcrumb builds the fixed 3-level navigation trail:
// Home -> Recipe Index -> this recipe.
func ProjectBreadcrumb(rec *recipe.Record, site *config.Site) BreadcrumbSchema {
	return BreadcrumbSchema{
		Context: "https://schema.org",
		Type:    "BreadcrumbList",
		ItemListElement: []BreadcrumbItem{
			{Type: "ListItem", Position: 1, Name: "Home", Item: site.Origin() + "/"},
			{Type: "ListItem", Position: 2, Name: "Recipes", Item: site.Origin() + "/recipe-index"},
			{Type: "ListItem", Position: 3, Name: rec.Title, Item: CanonicalURL(rec, site)},
		},
	}
}

// FormatIngredient joins amount, unit, name and optional notes into the
// single-line form used by schema markup.
func FormatIngredient(ing recipe.Ingredient) string {
	parts := make([]string, 0, 4)
	if ing.Amount != "" {
		parts = append(parts, ing.Amount)
	}
	if ing.Unit != "" {
		parts = append(parts, ing.Unit)
	}
	if ing.Ingredient != "" {
		parts = append(parts, ing.Ingredient)
	}
	line := strings.Join(parts, " ")
	if ing.Notes != "" {
		line = fmt.Sprintf("%s (%s)", line, ing.Notes)
	}
	return line
}

func projectAuthor(rec *recipe.Record, site *config.Site) Person {
	name := rec.Author.Name
	jobTitle := rec.Author.Title
	if name == "" {
		name = site.Author.Name
		jobTitle = site.Author.Title
	}
	return Person{Type: "Person", Name: name, JobTitle: jobTitle}
}

// MarshalSchema renders a schema object as the JSON embedded in a
// page's ld+json script block.
func MarshalSchema(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}
	return string(data), nil
}
