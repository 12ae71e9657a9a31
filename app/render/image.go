package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/verdantkitchen/recipe-press/app/recipe"
)

// ImageType selects sizing hints and loading strategy for a rendered
// image. Heroes load eagerly with high fetch priority; everything else
// is lazy.
type ImageType int

const (
	ImageHero ImageType = iota
	ImageCard
	ImageStep
)

type imagePresentation struct {
	class         string
	sizes         string
	loading       string
	fetchPriority string
}

var imagePresentations = map[ImageType]imagePresentation{
	ImageHero: {
		class:         "recipe-hero-image",
		sizes:         "(max-width: 768px) 100vw, 800px",
		loading:       "eager",
		fetchPriority: "high",
	},
	ImageCard: {
		class:   "recipe-card-image",
		sizes:   "(max-width: 768px) 50vw, 300px",
		loading: "lazy",
	},
	ImageStep: {
		class:   "instruction-step-image",
		sizes:   "(max-width: 768px) 100vw, 400px",
		loading: "lazy",
	},
}

// RenderImage produces the markup for one image. A responsive image
// becomes a <picture> element with an optional WebP source; a legacy
// flat path degrades to a plain <img> without responsive sources.
func RenderImage(img recipe.Image, imageType ImageType, altFallback string) string {
	if !img.Usable() {
		return ""
	}

	presentation := imagePresentations[imageType]
	alt := img.Alt
	if alt == "" {
		alt = altFallback
	}

	var buf bytes.Buffer

	if img.Kind == recipe.ImageFlat {
		buf.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" class="%s" loading="%s"`,
			html.EscapeString(img.Src), html.EscapeString(alt), presentation.class, presentation.loading))
		writeFetchPriority(&buf, presentation)
		buf.WriteString(">")
		return buf.String()
	}

	buf.WriteString("<picture>")
	if img.WebP != "" {
		buf.WriteString(fmt.Sprintf(`<source type="image/webp" srcset="%s">`, html.EscapeString(img.WebP)))
	}
	if img.Srcset != "" {
		buf.WriteString(fmt.Sprintf(`<source srcset="%s" sizes="%s">`,
			html.EscapeString(img.Srcset), presentation.sizes))
	}

	buf.WriteString(fmt.Sprintf(`<img src="%s" alt="%s" class="%s" loading="%s"`,
		html.EscapeString(img.Src), html.EscapeString(alt), presentation.class, presentation.loading))
	if img.Width > 0 && img.Height > 0 {
		buf.WriteString(fmt.Sprintf(` width="%d" height="%d"`, img.Width, img.Height))
	}
	writeFetchPriority(&buf, presentation)
	buf.WriteString("></picture>")

	return buf.String()
}

func writeFetchPriority(buf *bytes.Buffer, presentation imagePresentation) {
	if presentation.fetchPriority != "" {
		buf.WriteString(fmt.Sprintf(` fetchpriority="%s"`, presentation.fetchPriority))
	}
}
