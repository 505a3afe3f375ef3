package driven

import "image"

// ImageCodec decodes, transforms and encodes profile pictures.
type ImageCodec interface {
	// Decode parses and verifies image bytes.
	// Errors wrap domain.ErrImageDecode.
	Decode(data []byte) (image.Image, error)

	// Rotate turns the image counter-clockwise by degrees,
	// expanding the canvas so no corner is clipped.
	Rotate(img image.Image, degrees int) image.Image

	// Encode serialises the image in a lossless format.
	Encode(img image.Image) ([]byte, error)
}
