package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads and validates the site configuration file.
func Load(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site config: %w", err)
	}

	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse site config: %w", err)
	}

	setDefaults(&site)

	if err := validate(&site); err != nil {
		return nil, fmt.Errorf("invalid site config %s: %w", path, err)
	}

	return &site, nil
}

func setDefaults(site *Site) {
	if site.Language == "" {
		site.Language = "en-US"
	}
	if site.Feed.MaxItems == 0 {
		site.Feed.MaxItems = 20
	}
	for i := range site.StaticPages {
		if site.StaticPages[i].ChangeFreq == "" {
			site.StaticPages[i].ChangeFreq = "monthly"
		}
		if site.StaticPages[i].Priority == "" {
			site.StaticPages[i].Priority = "0.5"
		}
	}
}

func validate(site *Site) error {
	if site.Title == "" {
		return fmt.Errorf("site title is required")
	}
	if site.BaseURL == "" {
		return fmt.Errorf("site base_url is required")
	}
	if !strings.HasPrefix(site.BaseURL, "http://") && !strings.HasPrefix(site.BaseURL, "https://") {
		return fmt.Errorf("site base_url must be an absolute URL")
	}
	if site.Feed.MaxItems < 0 {
		return fmt.Errorf("feed max_items must be non-negative")
	}

	for i, page := range site.StaticPages {
		if page.Path == "" {
			return fmt.Errorf("static page at index %d is missing a path", i)
		}
		if !strings.HasPrefix(page.Path, "/") {
			return fmt.Errorf("static page path at index %d must start with '/': %s", i, page.Path)
		}
	}

	return nil
}

// Origin returns the base URL without a trailing slash, suitable for
// prefixing absolute paths.
func (s *Site) Origin() string {
	return strings.TrimRight(s.BaseURL, "/")
}
