// Package imaging resizes and annotates screenshots before they are sent to
// a model or written to disk.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Decode parses a base64-encoded JPEG or PNG.
func Decode(b64 string) (image.Image, error) {
	data, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decode base64 image: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// EncodeJPEG returns img as base64 JPEG.
func EncodeJPEG(img image.Image, quality int) (string, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Scale resizes img by factor using Catmull-Rom resampling.
func Scale(img image.Image, factor float64) image.Image {
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Downscale shrinks a base64 screenshot by factor and re-encodes it as
// JPEG. A factor of 1 or more returns the input untouched.
func Downscale(b64 string, factor float64, quality int) (string, error) {
	if factor >= 1 || factor <= 0 {
		return b64, nil
	}
	img, err := Decode(b64)
	if err != nil {
		return "", err
	}
	return EncodeJPEG(Scale(img, factor), quality)
}
