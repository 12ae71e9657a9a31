package feedgen

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/verdantkitchen/recipe-press/app/cfg"
	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/recipe"
	"github.com/verdantkitchen/recipe-press/app/render"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Run builds the RSS 2.0 document for the most recently published
// recipes, newest first, capped by the site feed settings.
func (g *Generator) Run(records []*recipe.Record, siteConfig *config.Site) (string, error) {
	items := selectItems(records, siteConfig.Feed.MaxItems)

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	g.writeElement(&buf, "title", siteConfig.Title, 4)
	g.writeElement(&buf, "link", siteConfig.Origin(), 4)
	g.writeElement(&buf, "description", siteConfig.Description, 4)

	selfLink := siteConfig.Origin() + "/feed.xml"
	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(selfLink)))

	lastBuildDate := time.Now().In(time.Local)
	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Recipe-Press/%s", cfg.GetVersion()), 4)
	if siteConfig.Language != "" {
		g.writeElement(&buf, "language", siteConfig.Language, 4)
	}

	for _, rec := range items {
		g.writeItem(&buf, rec, siteConfig)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

// WriteFeed generates the feed and writes it atomically to
// <output>/feed.xml.
func (g *Generator) WriteFeed(records []*recipe.Record, siteConfig *config.Site, outputDir string) (string, error) {
	document, err := g.Run(records, siteConfig)
	if err != nil {
		return "", err
	}

	outputPath := filepath.Join(outputDir, "feed.xml")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outputDir, ".feed-*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(document); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write feed: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close feed file: %w", err)
	}

	if err := os.Rename(tmpName, outputPath); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move feed into place: %w", err)
	}

	return outputPath, nil
}

func (g *Generator) writeItem(buf *bytes.Buffer, rec *recipe.Record, siteConfig *config.Site) {
	link := render.CanonicalURL(rec, siteConfig)

	buf.WriteString("    <item>\n")

	buf.WriteString("      <guid isPermaLink=\"true\">")
	xml.EscapeText(buf, []byte(link))
	buf.WriteString("</guid>\n")

	g.writeElement(buf, "title", rec.Title, 6)
	g.writeElement(buf, "link", link, 6)
	g.writeElement(buf, "description", rec.Description, 6)

	if pubDate, err := time.Parse("2006-01-02", rec.DatePublished); err == nil {
		g.writeElement(buf, "pubDate", pubDate.Format(time.RFC1123Z), 6)
	}

	for _, category := range rec.Categories {
		if category != "" {
			g.writeElement(buf, "category", category, 6)
		}
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
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

// selectItems returns records with a slug, newest datePublished first,
// truncated to maxItems. ISO dates sort lexically.
func selectItems(records []*recipe.Record, maxItems int) []*recipe.Record {
	items := make([]*recipe.Record, 0, len(records))
	for _, rec := range records {
		if rec.Slug != "" {
			items = append(items, rec)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].DatePublished > items[j].DatePublished
	})

	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}

	return items
}
