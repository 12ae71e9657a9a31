package site

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
)

func sitemapSite() *config.Site {
	return &config.Site{
		Title:   "Verdant Kitchen",
		BaseURL: "https://verdantkitchen.example.com",
		StaticPages: []config.StaticPage{
			{Path: "/", ChangeFreq: "weekly", Priority: "1.0"},
			{Path: "/recipe-index", ChangeFreq: "weekly", Priority: "0.9", LastMod: "2025-01-10"},
		},
	}
}

func TestGenerateSitemap(t *testing.T) {
	records := []*recipe.Record{
		{Slug: "banana-bites", DatePublished: "2025-03-10", DateModified: "2025-04-02"},
		{Slug: "chia-pudding", DatePublished: "2025-02-01"},
		{Slug: "", Title: "record without slug"},
	}

	out := GenerateSitemap(records, sitemapSite())

	if !strings.Contains(out, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Sitemap should start with the XML declaration")
	}
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Sitemap should declare the sitemap namespace")
	}

	if !strings.Contains(out, "<loc>https://verdantkitchen.example.com/</loc>") {
		t.Error("Sitemap should list the home page")
	}
	if !strings.Contains(out, "<loc>https://verdantkitchen.example.com/recipe-index</loc>") {
		t.Error("Sitemap should list configured static pages")
	}
	if !strings.Contains(out, "<lastmod>2025-01-10</lastmod>") {
		t.Error("Static page lastmod should be honored")
	}

	if !strings.Contains(out, "<loc>https://verdantkitchen.example.com/recipes/banana-bites</loc>") {
		t.Error("Sitemap should list recipe pages")
	}
	// dateModified wins over datePublished
	if !strings.Contains(out, "<lastmod>2025-04-02</lastmod>") {
		t.Error("Recipe lastmod should prefer dateModified")
	}
	if !strings.Contains(out, "<lastmod>2025-02-01</lastmod>") {
		t.Error("Recipe lastmod should fall back to datePublished")
	}

	if strings.Contains(out, "record without slug") || strings.Count(out, "<url>") != 4 {
		t.Errorf("Records without a slug are skipped; expected 4 url entries, got %d", strings.Count(out, "<url>"))
	}

	for _, fragment := range []string{"<changefreq>monthly</changefreq>", "<priority>0.8</priority>"} {
		if !strings.Contains(out, fragment) {
			t.Errorf("Recipe entries should carry %s", fragment)
		}
	}
}

func TestWriteSitemap(t *testing.T) {
	outputDir := t.TempDir()
	records := []*recipe.Record{{Slug: "banana-bites", DatePublished: "2025-03-10"}}

	path, err := WriteSitemap(records, sitemapSite(), outputDir)
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(outputDir, "sitemap.xml") {
		t.Errorf("Unexpected sitemap path: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "recipes/banana-bites") {
		t.Error("Written sitemap should contain recipe entries")
	}
}
