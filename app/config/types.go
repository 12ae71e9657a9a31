package config

// Site represents the site-wide configuration loaded from site.yml
type Site struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"base_url"`
	Language    string `yaml:"language"`

	Author AuthorInfo `yaml:"author"`

	// Static pages listed in the sitemap alongside recipe pages
	StaticPages []StaticPage `yaml:"static_pages"`

	// Known categories, in display order
	Categories []string `yaml:"categories"`

	Feed FeedSettings `yaml:"feed"`
}

// AuthorInfo is the default author applied to records without one
type AuthorInfo struct {
	Name  string `yaml:"name"`
	Title string `yaml:"title"`
}

// StaticPage is a non-recipe page included in the sitemap
type StaticPage struct {
	Path       string `yaml:"path"`
	ChangeFreq string `yaml:"changefreq"`
	Priority   string `yaml:"priority"`
	LastMod    string `yaml:"lastmod"`
}

// FeedSettings controls the generated RSS feed
type FeedSettings struct {
	MaxItems int `yaml:"max_items"`
}
