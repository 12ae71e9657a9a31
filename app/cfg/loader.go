package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content configuration
	DataPath     string `long:"data-path" env:"DATA_PATH" default:"./data/recipes" description:"Directory of per-recipe JSON files, or a legacy aggregate recipes.json file"`
	SiteConfig   string `long:"site-config" env:"SITE_CONFIG" default:"./site.yml" description:"Site configuration file"`
	TemplatePath string `long:"template" env:"TEMPLATE_PATH" default:"./templates/recipe.html" description:"Recipe page template file"`
	OutputDir    string `long:"output-dir" env:"OUTPUT_DIR" default:"./public" description:"Directory for generated pages"`
	ImagesDir    string `long:"images-dir" env:"IMAGES_DIR" default:"./images" description:"Directory for generated image variants"`

	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for serve command"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of workers for batch page generation"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load parses command-line flags and environment variables. It returns
// (nil, nil, nil) when help was requested. The remaining positional
// arguments form the CLI command (e.g. "generate all").
func Load() (*Cfg, []string, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	args, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil, nil
			}
		}
		return nil, nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DataPath:     raw.DataPath,
		SiteConfig:   raw.SiteConfig,
		TemplatePath: raw.TemplatePath,
		OutputDir:    raw.OutputDir,
		ImagesDir:    raw.ImagesDir,
		Port:         raw.Port,
		WorkerCount:  raw.WorkerCount,
		Timezone:     raw.Timezone,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, args, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// SetForTesting installs a configuration without flag parsing.
func SetForTesting(c *Cfg) {
	globalCfg = c
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
