package watermark

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err, "output must decode as valid JPEG")
	return img
}

func TestApply_OutputIsJPEGWithSameDimensions(t *testing.T) {
	src := encodePNG(t, 640, 480)

	out, err := Apply(src, DefaultSpec("SampleMarine"))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestApply_DownscalesLargeImage(t *testing.T) {
	// 4000x3000 with a 1920 ceiling scales by 0.48 on both axes.
	src := encodePNG(t, 4000, 3000)

	out, err := Apply(src, DefaultSpec("SampleMarine"))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 1920, img.Bounds().Dx())
	assert.Equal(t, 1440, img.Bounds().Dy())
}

func TestApply_NeverUpscales(t *testing.T) {
	src := encodePNG(t, 100, 80)

	out, err := Apply(src, DefaultSpec("SampleMarine"))
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 80, img.Bounds().Dy())
}

func TestApply_Deterministic(t *testing.T) {
	src := encodePNG(t, 320, 240)
	spec := DefaultSpec("SampleMarine")

	first, err := Apply(src, spec)
	require.NoError(t, err)
	second, err := Apply(src, spec)
	require.NoError(t, err)

	assert.True(t, bytes.Equal(first, second), "identical input and spec must produce identical bytes")
}

func TestApply_RejectsNonImage(t *testing.T) {
	_, err := Apply([]byte("definitely not an image"), DefaultSpec("SampleMarine"))
	require.Error(t, err)

	var decodeErr *DecodeError
	assert.True(t, errors.As(err, &decodeErr))
}

func TestApply_EmptyTextStillReencodes(t *testing.T) {
	src := encodePNG(t, 200, 150)

	spec := DefaultSpec("")
	out, err := Apply(src, spec)
	require.NoError(t, err)

	img := decodeJPEG(t, out)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestOutputName(t *testing.T) {
	assert.Equal(t, "engine.jpg", OutputName("engine.png"))
	assert.Equal(t, "propeller.jpg", OutputName("propeller.jpeg"))
	assert.Equal(t, "photo.jpg", OutputName("photo"))
	assert.Equal(t, "a.b.jpg", OutputName("a.b.webp"))
}

func TestSpecNormalized_Defaults(t *testing.T) {
	s := Spec{Text: "x"}.normalized()

	assert.Equal(t, DefaultOpacity, s.Opacity)
	assert.Equal(t, DefaultFontScale, s.FontScale)
	assert.Equal(t, DefaultTileSpacingScale, s.TileSpacingScale)
	assert.Equal(t, DefaultMaxDimension, s.MaxDimension)
	assert.Equal(t, DefaultQuality, s.Quality)
}

func TestSpecNormalized_KeepsZeroAngle(t *testing.T) {
	s := Spec{Text: "x", AngleDegrees: 0}.normalized()
	assert.Zero(t, s.AngleDegrees)

	s = Spec{Text: "x", AngleDegrees: 12.5}.normalized()
	assert.Equal(t, 12.5, s.AngleDegrees)
}

func TestSpecNormalized_ClampsOpacity(t *testing.T) {
	assert.Equal(t, 1.0, Spec{Opacity: 1.6}.normalized().Opacity)
	assert.Equal(t, DefaultOpacity, Spec{Opacity: -0.3}.normalized().Opacity)
}

func TestApply_TiltAscendsLeftToRight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 256, 256))
	for y := 0; y < 256; y++ {
		for x := 0; x < 256; x++ {
			img.Set(x, y, color.RGBA{A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))

	spec := Spec{
		Text:             "IIIIIIIIIIII",
		Opacity:          1,
		FontScale:        0.08,
		TileSpacingScale: 1, // one tile stride per canvas, keeps the center run isolated
		AngleDegrees:     -35,
		MaxDimension:     1920,
		Quality:          0.95,
	}
	out, err := Apply(buf.Bytes(), spec)
	require.NoError(t, err)
	res := decodeJPEG(t, out)

	// A -35 degree tilt runs bottom-left to top-right on screen, so over the
	// bright text pixels near the center y falls as x grows.
	var cov float64
	var n int
	for y := 48; y < 208; y++ {
		for x := 48; x < 208; x++ {
			r, g, b, _ := res.At(x, y).RGBA()
			if (r+g+b)/3 > 0x8000 {
				cov += (float64(x) - 128) * (float64(y) - 128)
				n++
			}
		}
	}
	require.Greater(t, n, 20, "expected the center text run inside the sampled window")
	assert.Negative(t, cov)
}
