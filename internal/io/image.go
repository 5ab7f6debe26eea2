package ioutils

import (
	"bytes"
	"context"
	"image"
	_ "image/gif" // GIF decoder registration
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// IconSize is the edge length of the hicolor icon directory Lutris reads.
const IconSize = 128

// ImageService provides image processing operations for downloaded art.
//
// ImageService is used to:
//   - Convert grids, heroes and logos to JPEG so they match their .jpg names
//   - Fit icons into the 128x128 icon theme slot as PNG
//
// SteamGridDB serves PNG, JPEG, WebP and occasionally animated images. Only
// the first frame of animated images survives conversion.
//
// Example usage:
//
//	svc := NewImageService()
//	jpg, err := svc.ConvertToJPEG(ctx, webpData)
//	icon, err := svc.FitPNG(ctx, icoData, IconSize)
type ImageService struct {
	quality int
}

// NewImageService creates a new ImageService encoding JPEG at quality 90.
func NewImageService() *ImageService {
	return &ImageService{quality: 90}
}

// FitPNG scales an image to fit within size x size and encodes it as PNG.
//
// The aspect ratio is preserved and images already small enough are not
// upscaled, only re-encoded. Transparency is kept.
//
// Example:
//
//	// A 256x256 icon becomes 128x128
//	// A 512x256 icon becomes 128x64
//	icon, err := svc.FitPNG(ctx, data, 128)
func (s *ImageService) FitPNG(ctx context.Context, data []byte, size int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := fitWithin(bounds.Dx(), bounds.Dy(), size, size)

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ConvertToJPEG re-encodes an image as JPEG.
//
// Transparent areas are flattened onto black, which is what Lutris shows
// behind cover art anyway.
func (s *ImageService) ConvertToJPEG(ctx context.Context, data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: s.quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fitWithin returns the largest dimensions not exceeding maxW x maxH that
// keep the aspect ratio of w x h. Smaller images are returned unchanged.
func fitWithin(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	ratio := float64(w) / float64(h)
	if float64(maxW)/float64(maxH) > ratio {
		// Height is the limiting factor
		nw := int(float64(maxH) * ratio)
		if nw < 1 {
			nw = 1
		}
		return nw, maxH
	}
	// Width is the limiting factor
	nh := int(float64(maxW) / ratio)
	if nh < 1 {
		nh = 1
	}
	return maxW, nh
}
