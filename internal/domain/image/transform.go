package image

import (
	"bytes"
	goimage "image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"limban-server-go/internal/platform/errors"
)

// Transform decodes a source image, reshapes it into the variant's box and
// encodes the result as webp at the variant's quality.
func Transform(src []byte, spec VariantSpec) ([]byte, error) {
	img, _, err := goimage.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, errors.Wrap(errors.KindPipeline, "image.transform", "failed to decode source image", err)
	}

	var out goimage.Image
	switch {
	case spec.Fit == FitCover && spec.Height != nil:
		out = imaging.Fill(img, spec.Width, *spec.Height, imaging.Center, imaging.Lanczos)
	case spec.Height != nil:
		out = imaging.Fit(img, spec.Width, *spec.Height, imaging.Lanczos)
	default:
		out = imaging.Resize(img, spec.Width, 0, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, out, &webp.Options{Quality: float32(spec.Quality)}); err != nil {
		return nil, errors.Wrap(errors.KindPipeline, "image.transform", "failed to encode variant "+spec.Name, err)
	}
	return buf.Bytes(), nil
}
