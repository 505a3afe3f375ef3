// Package imaging implements the image codec used by the picture rotation loop.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/custodia-labs/autoprofile/internal/core/domain"
	"github.com/custodia-labs/autoprofile/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.ImageCodec = (*Codec)(nil)

// Codec decodes PNG, JPEG, GIF, BMP, TIFF and WebP and always encodes PNG.
type Codec struct {
	background color.Color
}

// NewCodec creates a codec that fills rotated corners with transparency.
func NewCodec() *Codec {
	return &Codec{background: color.Transparent}
}

// Decode verifies the header, then decodes the whole image.
// JPEG EXIF orientation is applied so the rotation starts from what the user sees.
func (c *Codec) Decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", domain.ErrImageDecode)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrImageDecode, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("%w: %s image has no pixels", domain.ErrImageDecode, format)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrImageDecode, format, err)
	}
	return img, nil
}

// Rotate turns img counter-clockwise; the canvas grows to fit the corners.
func (c *Codec) Rotate(img image.Image, degrees int) image.Image {
	degrees %= domain.FullTurn
	if degrees < 0 {
		degrees += domain.FullTurn
	}

	switch degrees {
	case 0:
		return imaging.Clone(img)
	case 90:
		return imaging.Rotate90(img)
	case 180:
		return imaging.Rotate180(img)
	case 270:
		return imaging.Rotate270(img)
	default:
		return imaging.Rotate(img, float64(degrees), c.background)
	}
}

// Encode writes img as PNG.
func (c *Codec) Encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	return buf.Bytes(), nil
}
