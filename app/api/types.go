package api

import (
	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
)

type Handler struct {
	repo *recipe.Repository
	site *config.Site
}

// RecipeSummary is the list-view projection used by the homepage
// sections, the recipe index and the search box.
type RecipeSummary struct {
	Slug             string   `json:"slug"`
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Categories       []string `json:"categories"`
	Thumbnail        string   `json:"thumbnail,omitempty"`
	TotalTimeDisplay string   `json:"totalTimeDisplay,omitempty"`
	Difficulty       string   `json:"difficulty,omitempty"`
	URL              string   `json:"url"`
	Featured         bool     `json:"featured,omitempty"`
	Popular          bool     `json:"popular,omitempty"`
	Viral            bool     `json:"viral,omitempty"`
}
