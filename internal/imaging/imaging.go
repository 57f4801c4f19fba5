package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
)

// ErrNotAnImage reports payloads that are not decodable JPEG or PNG data.
var ErrNotAnImage = errors.New("payload is not a decodable image")

// Normalize validates raw bytes as JPEG or PNG and downscales images whose
// longest side exceeds maxDimension, re-encoding as JPEG so oversized
// uploads are not shipped to the upstream model wholesale. Images already
// within bounds pass through unchanged.
func Normalize(data []byte, maxDimension uint) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	if maxDimension == 0 || (uint(cfg.Width) <= maxDimension && uint(cfg.Height) <= maxDimension) {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAnImage, err)
	}

	var resized image.Image
	if cfg.Width >= cfg.Height {
		resized = resize.Resize(maxDimension, 0, img, resize.Lanczos3)
	} else {
		resized = resize.Resize(0, maxDimension, img, resize.Lanczos3)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
