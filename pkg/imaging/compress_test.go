package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// noisyPNG encodes a PNG full of random pixels so it compresses poorly
// and reliably lands over small thresholds.
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{
				R: uint8(rng.Intn(256)),
				G: uint8(rng.Intn(256)),
				B: uint8(rng.Intn(256)),
				A: 255,
			})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCompressReceipt_PassthroughUnderThreshold(t *testing.T) {
	data := noisyPNG(t, 32, 32)

	out, contentType, err := CompressReceipt(data, int64(len(data)))
	require.NoError(t, err)
	require.Empty(t, contentType, "no re-encode signalled")
	require.Equal(t, data, out)
}

func TestCompressReceipt_ReencodesOversized(t *testing.T) {
	data := noisyPNG(t, 400, 300)
	threshold := int64(len(data) / 4)

	out, contentType, err := CompressReceipt(data, threshold)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)
	require.NotEmpty(t, out)
	require.Less(t, len(out), len(data))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "jpeg", format)
	require.Equal(t, 400, cfg.Width, "small images keep their dimensions")
	require.Equal(t, 300, cfg.Height)
}

func TestCompressReceipt_DownscalesLargeImages(t *testing.T) {
	data := noisyPNG(t, 2000, 1000)

	out, contentType, err := CompressReceipt(data, 1024)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", contentType)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, MaxDimension, cfg.Width)
	require.Equal(t, 800, cfg.Height, "aspect ratio preserved")
}

func TestCompressReceipt_RejectsNonImages(t *testing.T) {
	junk := bytes.Repeat([]byte("definitely not an image "), 100)

	_, _, err := CompressReceipt(junk, 16)
	require.Error(t, err)
}

func TestDownscale_NoopWithinBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 50))
	out := downscale(img, MaxDimension)
	require.Equal(t, img.Bounds(), out.Bounds())
}
