package content

import (
	"limban-server-go/internal/domain/image"
)

// EnrichGallery decorates a page gallery for rendering, numbering views by
// position.
func EnrichGallery(items []GalleryItem, pageType, contentName string) []image.EnrichedImage {
	refs := make([]image.RawImage, len(items))
	for i, item := range items {
		refs[i] = image.RawImage{
			URL:       item.Image.URL,
			Caption:   firstNonEmpty(item.Caption, item.Image.Caption),
			CustomAlt: item.Image.CustomAlt,
		}
	}
	return image.EnrichAll(refs, image.Context{
		PageType:    pageType,
		ContentName: contentName,
		ImageType:   "gallery",
	})
}

// EnrichSlides decorates hero slides. Hero imagery always loads eagerly.
func EnrichSlides(slides []Slide) []image.EnrichedImage {
	out := make([]image.EnrichedImage, len(slides))
	for i, slide := range slides {
		idx := i
		out[i] = image.Enrich(image.RawImage{
			URL:       slide.Image.URL,
			Caption:   slide.Image.Caption,
			CustomAlt: slide.Image.CustomAlt,
		}, image.Context{
			ContentName: slide.Title,
			ImageType:   "hero",
			Index:       &idx,
			Priority:    true,
		})
	}
	return out
}

// EnrichRoomImages decorates a room's gallery for the room detail page.
func EnrichRoomImages(room Room) []image.EnrichedImage {
	refs := make([]image.RawImage, len(room.Images))
	for i, ref := range room.Images {
		refs[i] = image.RawImage{URL: ref.URL, Caption: ref.Caption, CustomAlt: ref.CustomAlt}
	}
	return image.EnrichAll(refs, image.Context{
		PageType:    "rooms",
		ContentName: room.Name,
	})
}
