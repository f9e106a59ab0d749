package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// MaxDimension is the longest edge after downscaling
	MaxDimension = 1600
	// JPEGQuality used when re-encoding
	JPEGQuality = 80
)

// CompressReceipt downscales and re-encodes an image when it exceeds
// threshold bytes. Images at or under the threshold pass through
// untouched. Anything re-encoded comes back as JPEG together with its
// new content type.
func CompressReceipt(data []byte, threshold int64) ([]byte, string, error) {
	if int64(len(data)) <= threshold {
		return data, "", nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode receipt image: %w", err)
	}

	resized := downscale(img, MaxDimension)

	var buf bytes.Buffer
	quality := JPEGQuality
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("failed to re-encode receipt image: %w", err)
	}

	// Step quality down until under the threshold or quality bottoms out.
	for int64(buf.Len()) > threshold && quality > 30 {
		quality -= 10
		buf.Reset()
		if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
			return nil, "", fmt.Errorf("failed to re-encode receipt image: %w", err)
		}
	}

	return buf.Bytes(), "image/jpeg", nil
}

// downscale resizes img so its longest edge is at most max, preserving
// aspect ratio. Images already within bounds are returned as-is.
func downscale(img image.Image, max int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= max && h <= max {
		return img
	}

	var nw, nh int
	if w >= h {
		nw = max
		nh = h * max / w
	} else {
		nh = max
		nw = w * max / h
	}
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
