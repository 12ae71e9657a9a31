package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/verdantkitchen/recipe-press/app/api"
	"github.com/verdantkitchen/recipe-press/app/build"
	"github.com/verdantkitchen/recipe-press/app/cfg"
	"github.com/verdantkitchen/recipe-press/app/config"
	"github.com/verdantkitchen/recipe-press/app/feedgen"
	"github.com/verdantkitchen/recipe-press/app/images"
	"github.com/verdantkitchen/recipe-press/app/recipe"
	"github.com/verdantkitchen/recipe-press/app/site"
)

const usage = "Usage: recipe-press [options] <command>\n" +
	"Commands:\n" +
	"  generate <slug|all>          Render recipe pages\n" +
	"  sitemap                      Write sitemap.xml\n" +
	"  feed                         Write feed.xml\n" +
	"  serve                        Serve the generated site and query API\n" +
	"  images <src> <recipe> [type] Create responsive image variants (hero, card, process, gallery)"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	appConfig, args, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	if appConfig.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	if len(args) == 0 {
		log.Fatal(usage)
	}

	switch args[0] {
	case "generate":
		runGenerate(appConfig, args[1:])
	case "sitemap":
		runSitemap(appConfig)
	case "feed":
		runFeed(appConfig)
	case "serve":
		runServe(appConfig)
	case "images":
		runImages(appConfig, args[1:])
	default:
		log.Fatalf("Unknown command %q\n%s", args[0], usage)
	}
}

func loadSite(appConfig *cfg.Cfg) *config.Site {
	siteConfig, err := config.Load(appConfig.SiteConfig)
	if err != nil {
		log.Fatalf("Failed to load site configuration: %v", err)
	}
	return siteConfig
}

func loadRepository(appConfig *cfg.Cfg, mode recipe.LoadMode) *recipe.Repository {
	repo := recipe.NewRepository(appConfig.DataPath)
	if err := repo.Load(mode); err != nil {
		log.Fatalf("Failed to load recipes: %v", err)
	}
	log.Printf("Loaded %d recipes from %s", repo.Count(), appConfig.DataPath)
	for _, warning := range repo.Warnings() {
		log.Printf("Warning: %s", warning)
	}
	return repo
}

func runGenerate(appConfig *cfg.Cfg, args []string) {
	if len(args) != 1 {
		log.Fatal("generate requires a single slug or the literal \"all\"")
	}
	target := args[0]

	if target == "all" {
		// Batch mode: individual record failures are collected and
		// reported, the batch itself succeeds.
		repo := loadRepository(appConfig, recipe.LoadPartial)
		siteConfig := loadSite(appConfig)

		builder, err := site.NewBuilder(siteConfig, repo, appConfig.TemplatePath, appConfig.OutputDir)
		if err != nil {
			log.Fatalf("Failed to initialize page builder: %v", err)
		}

		runner := build.NewRunner(repo, builder, appConfig.WorkerCount)
		result := runner.RunAll()

		for _, buildErr := range result.Errors {
			log.Printf("Error: %v", buildErr)
		}
		for _, loadErr := range repo.LoadErrors() {
			log.Printf("Error: %v", loadErr)
		}
		log.Printf("Generated %d pages, %d failed, %d records skipped at load",
			result.Built, result.Failed, len(repo.LoadErrors()))
		return
	}

	if !recipe.ValidSlug(target) {
		log.Fatalf("Invalid slug %q: must match ^[a-z0-9-]+$", target)
	}

	// Single-record mode: any failure is fatal.
	repo := loadRepository(appConfig, recipe.LoadStrict)
	siteConfig := loadSite(appConfig)

	builder, err := site.NewBuilder(siteConfig, repo, appConfig.TemplatePath, appConfig.OutputDir)
	if err != nil {
		log.Fatalf("Failed to initialize page builder: %v", err)
	}

	rec, err := repo.GetBySlug(target)
	if err != nil {
		log.Fatalf("Failed to generate %s: %v", target, err)
	}

	path, err := builder.WritePage(rec)
	if err != nil {
		log.Fatalf("Failed to generate %s: %v", target, err)
	}
	log.Printf("Generated %s", path)
}

func runSitemap(appConfig *cfg.Cfg) {
	repo := loadRepository(appConfig, recipe.LoadPartial)
	siteConfig := loadSite(appConfig)

	path, err := site.WriteSitemap(repo.All(), siteConfig, appConfig.OutputDir)
	if err != nil {
		log.Fatalf("Failed to write sitemap: %v", err)
	}
	log.Printf("Sitemap written to %s (%d recipes, %d static pages)",
		path, repo.Count(), len(siteConfig.StaticPages))
}

func runFeed(appConfig *cfg.Cfg) {
	repo := loadRepository(appConfig, recipe.LoadPartial)
	siteConfig := loadSite(appConfig)

	path, err := feedgen.NewGenerator().WriteFeed(repo.All(), siteConfig, appConfig.OutputDir)
	if err != nil {
		log.Fatalf("Failed to write feed: %v", err)
	}
	log.Printf("Feed written to %s", path)
}

func runServe(appConfig *cfg.Cfg) {
	repo := loadRepository(appConfig, recipe.LoadPartial)
	siteConfig := loadSite(appConfig)

	handler := api.NewHandler(repo, siteConfig)
	server := api.NewServer(handler, appConfig.OutputDir)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Serving %s on port %s", appConfig.OutputDir, appConfig.Port)
		log.Printf("Endpoints available:")
		log.Printf("  Site:       http://localhost:%s/", appConfig.Port)
		log.Printf("  Recipes:    http://localhost:%s/api/recipes", appConfig.Port)
		log.Printf("  Search:     http://localhost:%s/api/recipes?q=<query>", appConfig.Port)
		log.Printf("  Health:     http://localhost:%s/health", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}
}

func runImages(appConfig *cfg.Cfg, args []string) {
	if len(args) < 2 || len(args) > 3 {
		log.Fatal("images requires <source-image> <recipe-name> [type]")
	}

	sourcePath := args[0]
	recipeName := args[1]
	variantType := string(images.VariantHero)
	if len(args) == 3 {
		variantType = args[2]
	}

	if !recipe.ValidSlug(recipeName) {
		log.Fatalf("Invalid recipe name %q: must match ^[a-z0-9-]+$", recipeName)
	}
	if !images.ValidType(variantType) {
		log.Fatalf("Unknown variant type %q: expected hero, card, process or gallery", variantType)
	}

	optimizer := images.NewOptimizer(appConfig.ImagesDir)
	written, err := optimizer.CreateVariants(sourcePath, recipeName, images.VariantType(variantType))
	if err != nil {
		log.Fatalf("Failed to create image variants: %v", err)
	}

	for _, path := range written {
		log.Printf("Created %s", path)
	}
	log.Printf("Image variants complete: %d created", len(written))
}
