package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizePassesThroughSmallImages(t *testing.T) {
	data := encodePNG(t, 32, 24)

	out, err := Normalize(data, 64)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected small image to pass through unchanged")
	}
}

func TestNormalizeDownscalesOversizedImages(t *testing.T) {
	data := encodePNG(t, 200, 100)

	out, err := Normalize(data, 64)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not a decodable image: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("expected jpeg re-encoding, got %s", format)
	}
	if cfg.Width != 64 {
		t.Fatalf("expected longest side scaled to 64, got width %d", cfg.Width)
	}
	if cfg.Height > 64 {
		t.Fatalf("height not within bounds: %d", cfg.Height)
	}
}

func TestNormalizeZeroBoundDisablesDownscaling(t *testing.T) {
	data := encodePNG(t, 200, 100)

	out, err := Normalize(data, 0)
	if err != nil {
		t.Fatalf("expected success, got error: %v", err)
	}
	if !bytes.Equal(out, data) {
		t.Fatal("expected image to pass through when bound is disabled")
	}
}

func TestNormalizeRejectsNonImagePayload(t *testing.T) {
	_, err := Normalize([]byte("definitely not an image"), 64)
	if !errors.Is(err, ErrNotAnImage) {
		t.Fatalf("expected ErrNotAnImage, got %v", err)
	}
}
