package recipe

import (
	"encoding/json"
	"fmt"
)

// Record is the domain entity holding all data for one recipe. Records
// are immutable inputs: they are read to produce derived artifacts and
// never mutated after loading.
type Record struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`

	Author        Author `json:"author"`
	DatePublished string `json:"datePublished"`
	DateModified  string `json:"dateModified"`

	Timing     Timing    `json:"timing"`
	Servings   Servings  `json:"servings"`
	Difficulty string    `json:"difficulty"`
	Nutrition  Nutrition `json:"nutrition"`

	Ingredients  []Ingredient  `json:"ingredients"`
	Instructions []Instruction `json:"instructions"`

	Image Images `json:"image"`

	Story         []string       `json:"story,omitempty"`
	Tips          []string       `json:"tips,omitempty"`
	FAQ           []FAQEntry     `json:"faq,omitempty"`
	Notes         []string       `json:"notes,omitempty"`
	Substitutions []Substitution `json:"substitutions,omitempty"`
	Equipment     []string       `json:"equipment,omitempty"`

	SEO SEO `json:"seo"`

	Featured bool `json:"featured"`
	Popular  bool `json:"popular"`
	Viral    bool `json:"viral"`

	// Rating is emitted in schema markup only when explicitly present
	// in the source record.
	Rating *Rating `json:"rating,omitempty"`
}

type Author struct {
	Name  string `json:"name"`
	Title string `json:"title"`
}

// Timing keeps the dual representation: machine-readable ISO 8601
// durations for schema markup, pre-formatted strings for display.
type Timing struct {
	PrepTime         string `json:"prepTime"`
	CookTime         string `json:"cookTime"`
	TotalTime        string `json:"totalTime"`
	PrepTimeDisplay  string `json:"prepTimeDisplay"`
	CookTimeDisplay  string `json:"cookTimeDisplay"`
	TotalTimeDisplay string `json:"totalTimeDisplay"`
}

type Servings struct {
	Yield int    `json:"yield"`
	Unit  string `json:"unit"`
}

type Nutrition struct {
	Calories string `json:"calories"`
	Protein  string `json:"protein"`
	Carbs    string `json:"carbs"`
	Fat      string `json:"fat"`
	Fiber    string `json:"fiber"`
	Sugar    string `json:"sugar"`
}

type Ingredient struct {
	Amount     string `json:"amount"`
	Unit       string `json:"unit"`
	Ingredient string `json:"ingredient"`
	Notes      string `json:"notes,omitempty"`
}

type Instruction struct {
	Step  int    `json:"step"`
	Text  string `json:"text"`
	Image *Image `json:"image,omitempty"`
}

type FAQEntry struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type Substitution struct {
	Ingredient  string `json:"ingredient"`
	Replacement string `json:"replacement"`
	Notes       string `json:"notes,omitempty"`
}

type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	CanonicalURL    string `json:"canonicalUrl,omitempty"`
}

type Rating struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

type Images struct {
	Hero      Image `json:"hero"`
	Thumbnail Image `json:"thumbnail"`
}

// ImageKind tags the two accepted image shapes. The shape is decided
// once when the record is decoded, never re-inspected at render time.
type ImageKind int

const (
	ImageFlat ImageKind = iota
	ImageResponsive
)

// Image is the tagged variant of the two accepted image shapes: a
// legacy flat path string, or a structured responsive object.
type Image struct {
	Kind   ImageKind
	Src    string
	Srcset string
	WebP   string
	Alt    string
	Width  int
	Height int
}

type responsiveImage struct {
	Src    string `json:"src"`
	Srcset string `json:"srcset"`
	WebP   string `json:"webp"`
	Alt    string `json:"alt"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// UnmarshalJSON accepts either a flat path string or a structured
// responsive object and records which shape was present.
func (img *Image) UnmarshalJSON(data []byte) error {
	var flat string
	if err := json.Unmarshal(data, &flat); err == nil {
		*img = Image{Kind: ImageFlat, Src: flat}
		return nil
	}

	var resp responsiveImage
	if err := json.Unmarshal(data, &resp); err != nil {
		return fmt.Errorf("image must be a path string or a responsive object: %w", err)
	}

	*img = Image{
		Kind:   ImageResponsive,
		Src:    resp.Src,
		Srcset: resp.Srcset,
		WebP:   resp.WebP,
		Alt:    resp.Alt,
		Width:  resp.Width,
		Height: resp.Height,
	}
	return nil
}

// MarshalJSON round-trips the tagged variant back to its source shape.
func (img Image) MarshalJSON() ([]byte, error) {
	if img.Kind == ImageFlat {
		return json.Marshal(img.Src)
	}
	return json.Marshal(responsiveImage{
		Src:    img.Src,
		Srcset: img.Srcset,
		WebP:   img.WebP,
		Alt:    img.Alt,
		Width:  img.Width,
		Height: img.Height,
	})
}

// Usable reports whether the image resolves to at least a source path.
func (img Image) Usable() bool {
	return img.Src != ""
}
