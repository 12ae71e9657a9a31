package site

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
)

const (
	recipeChangeFreq = "monthly"
	recipePriority   = "0.8"
)

// GenerateSitemap builds the sitemap.xml document: the configured
// static pages first, then one entry per recipe page.
func GenerateSitemap(records []*recipe.Record, siteConfig *config.Site) string {
	today := time.Now().In(time.Local).Format("2006-01-02")

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	buf.WriteString("  <!-- Main pages -->\n")
	for _, page := range siteConfig.StaticPages {
		writeURLEntry(&buf, siteConfig.Origin()+page.Path,
			cmp.Or(page.LastMod, today), page.ChangeFreq, page.Priority)
	}

	buf.WriteString("  <!-- Recipe pages -->\n")
	for _, rec := range records {
		if rec.Slug == "" {
			continue
		}
		lastMod := cmp.Or(rec.DateModified, rec.DatePublished, today)
		writeURLEntry(&buf, fmt.Sprintf("%s/recipes/%s", siteConfig.Origin(), rec.Slug),
			lastMod, recipeChangeFreq, recipePriority)
	}

	buf.WriteString("</urlset>\n")

	return buf.String()
}

// WriteSitemap generates the sitemap and writes it atomically to
// <output>/sitemap.xml.
func WriteSitemap(records []*recipe.Record, siteConfig *config.Site, outputDir string) (string, error) {
	document := GenerateSitemap(records, siteConfig)
	outputPath := filepath.Join(outputDir, "sitemap.xml")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outputDir, ".sitemap-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(document); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write sitemap: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close sitemap file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move sitemap into place: %w", err)
	}

	return outputPath, nil
}

func writeURLEntry(buf *bytes.Buffer, loc, lastMod, changeFreq, priority string) {
	buf.WriteString("  <url>\n")
	writeElement(buf, "loc", loc, 4)
	writeElement(buf, "lastmod", lastMod, 4)
	writeElement(buf, "changefreq", changeFreq, 4)
	writeElement(buf, "priority", priority, 4)
	buf.WriteString("  </url>\n")
}

func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}
