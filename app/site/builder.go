package site

import (
	"errors"
	"fmt"
	"html"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
	"github.com/verdantkitchen/recipe-press/app/render"
)

// ErrOutsideOutputDir marks a computed output location that escapes
// the output directory. The record's write is aborted.
var ErrOutsideOutputDir = errors.New("output path falls outside the output directory")

// Builder assembles complete recipe pages from the page template and
// writes them under the output directory. One Builder serves a whole
// batch; it holds only read-only state.
type Builder struct {
	site      *config.Site
	repo      *recipe.Repository
	template  string
	outputDir string
}

func NewBuilder(siteConfig *config.Site, repo *recipe.Repository, templatePath, outputDir string) (*Builder, error) {
	template, err := os.ReadFile(templatePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read page template %s: %w", templatePath, err)
	}

	return &Builder{
		site:      siteConfig,
		repo:      repo,
		template:  string(template),
		outputDir: outputDir,
	}, nil
}

// BuildPage renders the complete HTML document for one record.
func (b *Builder) BuildPage(rec *recipe.Record) (string, error) {
	values, err := b.pageValues(rec)
	if err != nil {
		return "", err
	}

	page, err := render.Assemble(b.template, values)
	if err != nil {
		return "", fmt.Errorf("failed to assemble page for %s: %w", rec.Slug, err)
	}

	return page, nil
}

// WritePage renders the record's page and writes it to
// <output>/recipes/<slug>.html. The document is written to a temporary
// file and renamed, so a failed render never leaves a half-written
// page observable.
func (b *Builder) WritePage(rec *recipe.Record) (string, error) {
	outputPath, err := b.outputPath(rec.Slug)
	if err != nil {
		return "", err
	}

	page, err := b.BuildPage(rec)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), ".page-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(page); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write page: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close page file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move page into place: %w", err)
	}

	slog.Debug("Page written", "slug", rec.Slug, "path", outputPath)

	return outputPath, nil
}

// outputPath derives the page location from the slug and verifies it
// stays inside the output directory.
func (b *Builder) outputPath(slug string) (string, error) {
	if !recipe.ValidSlug(slug) {
		return "", fmt.Errorf("%w: invalid slug %q", ErrOutsideOutputDir, slug)
	}

	outputDir, err := filepath.Abs(b.outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}

	outputPath, err := filepath.Abs(filepath.Join(outputDir, "recipes", slug+".html"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	if !strings.HasPrefix(outputPath, outputDir+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideOutputDir, outputPath)
	}

	return outputPath, nil
}

// pageValues computes the full placeholder vocabulary for one record.
func (b *Builder) pageValues(rec *recipe.Record) (map[string]string, error) {
	recipeSchema, err := render.MarshalSchema(render.ProjectRecipeSchema(rec, b.site))
	if err != nil {
		return nil, err
	}
	breadcrumbSchema, err := render.MarshalSchema(render.ProjectBreadcrumb(rec, b.site))
	if err != nil {
		return nil, err
	}

	metaTitle := rec.SEO.MetaTitle
	if metaTitle == "" {
		metaTitle = rec.Title
	}
	metaDescription := rec.SEO.MetaDescription
	if metaDescription == "" {
		metaDescription = rec.Description
	}

	related := b.repo.RelatedTo(rec, recipe.DefaultRelatedLimit)

	return map[string]string{
		"LANGUAGE":          b.site.Language,
		"SITE_TITLE":        escape(b.site.Title),
		"META_TITLE":        escape(metaTitle),
		"META_DESCRIPTION":  escape(metaDescription),
		"CANONICAL_URL":     render.CanonicalURL(rec, b.site),
		"OG_IMAGE":          render.AbsoluteImageURL(rec.Image.Hero, b.site),
		"RECIPE_SCHEMA":     recipeSchema,
		"BREADCRUMB_SCHEMA": breadcrumbSchema,

		"TITLE":          escape(rec.Title),
		"DESCRIPTION":    escape(rec.Description),
		"AUTHOR_NAME":    escape(authorName(rec, b.site)),
		"DATE_PUBLISHED": escape(rec.DatePublished),
		"PREP_TIME":      escape(rec.Timing.PrepTimeDisplay),
		"COOK_TIME":      escape(rec.Timing.CookTimeDisplay),
		"TOTAL_TIME":     escape(rec.Timing.TotalTimeDisplay),
		"SERVINGS":       fmt.Sprintf("%d", rec.Servings.Yield),
		"DIFFICULTY":     escape(rec.Difficulty),

		"BADGES":       render.RenderBadges(rec),
		"HERO_IMAGE":   render.RenderImage(rec.Image.Hero, render.ImageHero, rec.Title),
		"INGREDIENTS":  render.RenderIngredients(rec),
		"INSTRUCTIONS": render.RenderInstructions(rec),
		"NUTRITION":    render.RenderNutrition(rec),
		"STORY":        render.RenderStory(rec),
		"TIPS":         render.RenderTips(rec),
		"FAQ":          render.RenderFAQ(rec),
		"RELATED":      render.RenderRelated(related, b.site),
	}, nil
}

func escape(s string) string {
	return html.EscapeString(s)
}

func authorName(rec *recipe.Record, siteConfig *config.Site) string {
	if rec.Author.Name != "" {
		return rec.Author.Name
	}
	return siteConfig.Author.Name
}
