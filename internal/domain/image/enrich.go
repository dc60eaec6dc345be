package image

import (
	"strconv"
	"strings"
)

// RawImage is an image reference as the CMS delivers it.
type RawImage struct {
	URL       string
	Caption   string
	CustomAlt string
}

// Context describes where on the site an image appears, which drives alt
// text synthesis and loading hints. A nil Index marks a standalone image
// (sub-hero, room hero); only positioned gallery items get a view number.
// An empty ImageType means gallery.
type Context struct {
	PageType    string
	ContentName string
	ImageType   string
	Index       *int
	Priority    bool
}

// EnrichedImage is a RawImage decorated for rendering.
type EnrichedImage struct {
	URL     string `json:"url"`
	Alt     string `json:"alt"`
	Loading string `json:"loading"`
}

// typeDescriptors describe an image by its role, independent of page.
var typeDescriptors = map[string]string{
	"hero":      "luxury safari accommodation hero view",
	"gallery":   "premium resort experience",
	"logo":      "restaurant logo",
	"thumbnail": "facility preview",
	"feature":   "amenity highlight",
}

// pageDescriptors describe an image by the page it sits on, used when the
// image type carries no descriptor.
var pageDescriptors = map[string]string{
	"rooms":     "luxury safari room",
	"dining":    "resort dining experience",
	"vibe":      "Limban resort atmosphere",
	"wildlife":  "Tadoba wildlife experience",
	"corporate": "business facilities",
	"about":     "resort story and team",
}

// Enrich decorates one image. Alt text prefers an explicit custom alt, then
// the CMS caption, then a synthesized description from the image's context.
func Enrich(img RawImage, ctx Context) EnrichedImage {
	loading := "lazy"
	if ctx.Priority {
		loading = "eager"
	}
	return EnrichedImage{
		URL:     img.URL,
		Alt:     altText(img, ctx),
		Loading: loading,
	}
}

// EnrichAll decorates a slice, numbering views by position.
func EnrichAll(imgs []RawImage, ctx Context) []EnrichedImage {
	out := make([]EnrichedImage, len(imgs))
	for i, img := range imgs {
		c := ctx
		idx := i
		c.Index = &idx
		out[i] = Enrich(img, c)
	}
	return out
}

func altText(img RawImage, ctx Context) string {
	if img.CustomAlt != "" {
		return img.CustomAlt
	}
	if img.Caption != "" {
		return img.Caption
	}

	imageType := ctx.ImageType
	if imageType == "" {
		imageType = "gallery"
	}
	descriptor, ok := typeDescriptors[imageType]
	if !ok {
		descriptor, ok = pageDescriptors[ctx.PageType]
	}
	if !ok {
		descriptor = "Limban Resort"
	}

	parts := make([]string, 0, 4)
	if ctx.ContentName != "" {
		parts = append(parts, ctx.ContentName)
	}
	parts = append(parts, descriptor)
	if ctx.Index != nil {
		parts = append(parts, "view", strconv.Itoa(*ctx.Index+1))
	}
	return strings.Join(parts, " ")
}
