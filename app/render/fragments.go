package render

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
)

// Fragment renderers: pure functions from a Recipe Record (plus sibling
// context where needed) to HTML fragment strings. All interpolated text
// is escaped; story paragraphs and FAQ answers are the explicit
// raw-markup opt-ins for fields authored with intentional markup.

var titleCaser = cases.Title(language.English)

// Slugify lowercases s and replaces space runs with hyphens. Used as
// the fallback class name for categories outside the known set.
func Slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), "-")
}

// RenderBadges renders one badge per category.
func RenderBadges(rec *recipe.Record) string {
	if len(rec.Categories) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<div class="recipe-badges">`)
	for _, category := range rec.Categories {
		buf.WriteString(fmt.Sprintf(`<span class="badge badge-%s">%s</span>`,
			Slugify(category), html.EscapeString(titleCaser.String(category))))
	}
	buf.WriteString("</div>")
	return buf.String()
}

// RenderIngredients renders the ingredients list. Missing amounts and
// units render as empty strings. The base amount and unit ride along as
// data attributes for the client-side servings adjuster.
func RenderIngredients(rec *recipe.Record) string {
	var buf bytes.Buffer
	buf.WriteString(`<ul class="ingredients-list">` + "\n")
	for _, ing := range rec.Ingredients {
		buf.WriteString(fmt.Sprintf(`  <li class="ingredient"><span class="ingredient-amount" data-amount="%s" data-unit="%s">%s</span> <span class="ingredient-name">%s</span>`,
			html.EscapeString(ing.Amount),
			html.EscapeString(ing.Unit),
			html.EscapeString(strings.TrimSpace(ing.Amount+" "+ing.Unit)),
			html.EscapeString(ing.Ingredient)))
		if ing.Notes != "" {
			buf.WriteString(fmt.Sprintf(` <span class="ingredient-notes">(%s)</span>`, html.EscapeString(ing.Notes)))
		}
		buf.WriteString("</li>\n")
	}
	buf.WriteString("</ul>")
	return buf.String()
}

// RenderInstructions renders the numbered step list. A step image
// renders as a nested responsive-image fragment.
func RenderInstructions(rec *recipe.Record) string {
	var buf bytes.Buffer
	buf.WriteString(`<ol class="instructions-list">` + "\n")
	for _, step := range rec.Instructions {
		buf.WriteString(fmt.Sprintf(`  <li class="instruction-step"><span class="step-number">%d</span><p>%s</p>`,
			step.Step, html.EscapeString(step.Text)))
		if step.Image != nil && step.Image.Usable() {
			buf.WriteString(RenderImage(*step.Image, ImageStep, fmt.Sprintf("Step %d", step.Step)))
		}
		buf.WriteString("</li>\n")
	}
	buf.WriteString("</ol>")
	return buf.String()
}

// RenderNutrition renders the fixed 6-row nutrition table.
func RenderNutrition(rec *recipe.Record) string {
	rows := []struct {
		label string
		value string
	}{
		{"Calories", rec.Nutrition.Calories},
		{"Protein", rec.Nutrition.Protein},
		{"Carbs", rec.Nutrition.Carbs},
		{"Fat", rec.Nutrition.Fat},
		{"Fiber", rec.Nutrition.Fiber},
		{"Sugar", rec.Nutrition.Sugar},
	}

	var buf bytes.Buffer
	buf.WriteString(`<table class="nutrition-table">` + "\n")
	for _, row := range rows {
		buf.WriteString(fmt.Sprintf("  <tr><th>%s</th><td>%s</td></tr>\n",
			row.label, html.EscapeString(row.value)))
	}
	buf.WriteString("</table>")
	return buf.String()
}

// RenderStory renders the story section, or nothing when absent.
// Story paragraphs may carry intentional markup and are not escaped.
func RenderStory(rec *recipe.Record) string {
	if len(rec.Story) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<section class="recipe-story">` + "\n")
	for _, paragraph := range rec.Story {
		buf.WriteString(fmt.Sprintf("  <p>%s</p>\n", paragraph))
	}
	buf.WriteString("</section>")
	return buf.String()
}

// RenderTips renders the tips section, or nothing when absent or empty.
func RenderTips(rec *recipe.Record) string {
	if len(rec.Tips) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<section class="recipe-tips">` + "\n")
	buf.WriteString("  <h2>Tips</h2>\n  <ul>\n")
	for _, tip := range rec.Tips {
		buf.WriteString(fmt.Sprintf("    <li>%s</li>\n", html.EscapeString(tip)))
	}
	buf.WriteString("  </ul>\n</section>")
	return buf.String()
}

// RenderFAQ renders question/answer pairs, or nothing when absent or
// empty. Answers may carry intentional markup and are not escaped.
func RenderFAQ(rec *recipe.Record) string {
	if len(rec.FAQ) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<section class="recipe-faq">` + "\n")
	buf.WriteString("  <h2>Frequently Asked Questions</h2>\n")
	for _, entry := range rec.FAQ {
		buf.WriteString(fmt.Sprintf("  <details class=\"faq-entry\">\n    <summary>%s</summary>\n    <p>%s</p>\n  </details>\n",
			html.EscapeString(entry.Question), entry.Answer))
	}
	buf.WriteString("</section>")
	return buf.String()
}

// RenderRelated renders cross-link cards for related recipes, or
// nothing when there are none.
func RenderRelated(related []*recipe.Record, site *config.Site) string {
	if len(related) == 0 {
		return ""
	}

	var buf bytes.Buffer
	buf.WriteString(`<section class="related-recipes">` + "\n")
	buf.WriteString("  <h2>You Might Also Like</h2>\n")
	buf.WriteString(`  <div class="related-grid">` + "\n")
	for _, rec := range related {
		buf.WriteString(fmt.Sprintf(`  <a class="related-card" href="/recipes/%s">`, rec.Slug))
		buf.WriteString(RenderImage(rec.Image.Thumbnail, ImageCard, rec.Title))
		buf.WriteString(fmt.Sprintf(`<span class="related-title">%s</span>`, html.EscapeString(rec.Title)))
		if rec.Timing.TotalTimeDisplay != "" {
			buf.WriteString(fmt.Sprintf(`<span class="related-time">%s</span>`, html.EscapeString(rec.Timing.TotalTimeDisplay)))
		}
		buf.WriteString("</a>\n")
	}
	buf.WriteString("  </div>\n</section>")
	return buf.String()
}
