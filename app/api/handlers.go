package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
	"github.com/verdantkitchen/recipe-press/app/render"
)

func NewHandler(repo *recipe.Repository, siteConfig *config.Site) *Handler {
	return &Handler{
		repo: repo,
		site: siteConfig,
	}
}

// ListRecipes answers the client query surface: the full collection,
// optionally narrowed by ?category=, ?q= or a homepage section flag.
func (h *Handler) ListRecipes(c *gin.Context) {
	var records []*recipe.Record

	switch {
	case c.Query("q") != "":
		records = h.repo.Search(c.Query("q"))
	case c.Query("category") != "":
		records = h.repo.FilterByCategory(c.Query("category"))
	case c.Query("section") == "featured":
		records = h.repo.Featured()
	case c.Query("section") == "popular":
		records = h.repo.Popular()
	case c.Query("section") == "viral":
		records = h.repo.Viral()
	default:
		records = h.repo.All()
	}

	c.JSON(http.StatusOK, gin.H{
		"recipes": h.summarize(records),
		"total":   len(records),
	})
}

func (h *Handler) GetRecipe(c *gin.Context) {
	slug := c.Param("slug")
	if !recipe.ValidSlug(slug) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe slug"})
		return
	}

	rec, err := h.repo.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, recipe.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
			return
		}
		slog.Error("Repository error", "operation", "get_recipe", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Repository error"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (h *Handler) GetRelated(c *gin.Context) {
	slug := c.Param("slug")

	rec, err := h.repo.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	limit := recipe.DefaultRelatedLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	related := h.repo.RelatedTo(rec, limit)
	c.JSON(http.StatusOK, gin.H{
		"recipes": h.summarize(related),
		"total":   len(related),
	})
}

// ScaleRecipe answers the servings adjuster: ingredients scaled to
// ?servings=, clamped to the supported range.
func (h *Handler) ScaleRecipe(c *gin.Context) {
	slug := c.Param("slug")

	rec, err := h.repo.GetBySlug(slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	servings, err := strconv.Atoi(c.Query("servings"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid servings parameter"})
		return
	}
	servings = render.ClampServings(servings)

	c.JSON(http.StatusOK, gin.H{
		"slug":         rec.Slug,
		"baseServings": rec.Servings.Yield,
		"servings":     servings,
		"ingredients":  render.ScaleIngredients(rec, servings),
	})
}

func (h *Handler) ListCategories(c *gin.Context) {
	categories := h.repo.Categories()
	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
		"state":     h.repo.State().String(),
		"recipes":   h.repo.Count(),
		"warnings":  len(h.repo.Warnings()),
	})
}

func (h *Handler) summarize(records []*recipe.Record) []RecipeSummary {
	summaries := make([]RecipeSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, RecipeSummary{
			Slug:             rec.Slug,
			Title:            rec.Title,
			Description:      rec.Description,
			Categories:       rec.Categories,
			Thumbnail:        render.AbsoluteImageURL(rec.Image.Thumbnail, h.site),
			TotalTimeDisplay: rec.Timing.TotalTimeDisplay,
			Difficulty:       rec.Difficulty,
			URL:              render.CanonicalURL(rec, h.site),
			Featured:         rec.Featured,
			Popular:          rec.Popular,
			Viral:            rec.Viral,
		})
	}
	return summaries
}
