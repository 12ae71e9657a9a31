package images

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// VariantType selects the size grid for generated image variants.
type VariantType string

const (
	VariantHero    VariantType = "hero"
	VariantCard    VariantType = "card"
	VariantProcess VariantType = "process"
	VariantGallery VariantType = "gallery"
)

type variantSize struct {
	Name   string
	Width  int
	Height int
}

// Size grids per presentation type. Heroes are 4:5 portrait, cards and
// process shots 4:3, gallery thumbnails square with a 4:3 lightbox.
var variantSizes = map[VariantType][]variantSize{
	VariantHero: {
		{"400", 400, 500},
		{"800", 800, 1000},
		{"1200", 1200, 1500},
		{"1600", 1600, 2000},
	},
	VariantCard: {
		{"300", 300, 225},
		{"600", 600, 450},
	},
	VariantProcess: {
		{"400", 400, 300},
		{"800", 800, 600},
	},
	VariantGallery: {
		{"300", 300, 300},
		{"600", 600, 600},
		{"1200", 1200, 900},
	},
}

const jpegQuality = 85

// Optimizer creates responsive image variants under the images
// directory, one subdirectory per recipe.
type Optimizer struct {
	imagesDir string
}

func NewOptimizer(imagesDir string) *Optimizer {
	return &Optimizer{imagesDir: imagesDir}
}

// ValidType reports whether s names a known variant type.
func ValidType(s string) bool {
	_, ok := variantSizes[VariantType(s)]
	return ok
}

// CreateVariants resizes the input image to every size of the given
// variant type, center-cropped to the exact target dimensions, and
// writes <base>-<size>.jpg files under <images>/recipes/<recipeName>.
// Variants newer than the source are skipped. Returns the written
// paths.
func (o *Optimizer) CreateVariants(inputPath, recipeName string, variantType VariantType) ([]string, error) {
	sizes, ok := variantSizes[variantType]
	if !ok {
		return nil, fmt.Errorf("unknown variant type %q", variantType)
	}

	sourceInfo, err := os.Stat(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source image: %w", err)
	}

	source, err := imaging.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open source image %s: %w", inputPath, err)
	}

	recipeDir := filepath.Join(o.imagesDir, "recipes", recipeName)
	if err := os.MkdirAll(recipeDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create image directory: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))

	written := make([]string, 0, len(sizes))
	for _, size := range sizes {
		outputPath := filepath.Join(recipeDir, fmt.Sprintf("%s-%s.jpg", base, size.Name))

		if info, err := os.Stat(outputPath); err == nil && info.ModTime().After(sourceInfo.ModTime()) {
			slog.Debug("Variant up to date, skipping", "path", outputPath)
			continue
		}

		// Aspect-fit resize with a centered crop to the exact target
		variant := imaging.Fill(source, size.Width, size.Height, imaging.Center, imaging.Lanczos)

		if err := imaging.Save(variant, outputPath, imaging.JPEGQuality(jpegQuality)); err != nil {
			return written, fmt.Errorf("failed to save variant %s: %w", outputPath, err)
		}

		slog.Debug("Variant created", "path", outputPath, "width", size.Width, "height", size.Height)
		written = append(written, outputPath)
	}

	return written, nil
}
