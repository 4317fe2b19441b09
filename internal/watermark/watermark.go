package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"math"
	"path/filepath"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// Spec controls how the tiled text mark is stamped onto an image.
// Zero values fall back to the defaults below, except AngleDegrees,
// which is taken as given so a straight 0° pattern stays expressible;
// DefaultSpec supplies the production tilt.
type Spec struct {
	Text             string  // tile content, e.g. "SampleMarine"
	Opacity          float64 // alpha of the stamped text, clamped to [0,1]
	FontScale        float64 // font size as a fraction of canvas width
	TileSpacingScale float64 // grid stride as a fraction of canvas width
	AngleDegrees     float64 // clockwise rotation of the tile pattern
	MaxDimension     int     // downscale ceiling in pixels, never upscales
	Quality          float64 // JPEG re-encode quality, [0,1]
}

const (
	DefaultOpacity          = 0.15
	DefaultFontScale        = 1.0 / 25.0
	DefaultTileSpacingScale = 0.25
	DefaultAngleDegrees     = -35
	DefaultMaxDimension     = 1920
	DefaultQuality          = 0.85
)

// DefaultSpec returns the production watermark settings for the given text.
func DefaultSpec(text string) Spec {
	return Spec{
		Text:             text,
		Opacity:          DefaultOpacity,
		FontScale:        DefaultFontScale,
		TileSpacingScale: DefaultTileSpacingScale,
		AngleDegrees:     DefaultAngleDegrees,
		MaxDimension:     DefaultMaxDimension,
		Quality:          DefaultQuality,
	}
}

func (s Spec) normalized() Spec {
	if s.Opacity <= 0 {
		s.Opacity = DefaultOpacity
	}
	if s.Opacity > 1 {
		s.Opacity = 1
	}
	if s.FontScale <= 0 {
		s.FontScale = DefaultFontScale
	}
	if s.TileSpacingScale <= 0 {
		s.TileSpacingScale = DefaultTileSpacingScale
	}
	if s.MaxDimension <= 0 {
		s.MaxDimension = DefaultMaxDimension
	}
	if s.Quality <= 0 || s.Quality > 1 {
		s.Quality = DefaultQuality
	}
	return s
}

// The bundled Go Regular face is parsed once; it never changes at runtime.
var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
	fontErr  error
)

func loadFont() (*truetype.Font, error) {
	fontOnce.Do(func() {
		fontTTF, fontErr = truetype.Parse(goregular.TTF)
	})
	return fontTTF, fontErr
}

// Apply decodes data, overlays the tiled rotated text pattern and re-encodes
// the result as JPEG. The output is never larger than the input: the source is
// downscaled uniformly so its width does not exceed spec.MaxDimension.
//
// The same input bytes and spec always produce the same output bytes; there is
// no randomness anywhere in the pipeline.
func Apply(data []byte, spec Spec) ([]byte, error) {
	spec = spec.normalized()

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Err: err}
	}

	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()

	// Downscale ceiling: bound processing cost for large mobile-camera
	// uploads. Never upscale.
	scale := math.Min(1, float64(spec.MaxDimension)/float64(srcW))
	targetW := int(float64(srcW) * scale)
	targetH := int(float64(srcH) * scale)

	var base *image.NRGBA
	if scale < 1 {
		base = imaging.Resize(src, targetW, targetH, imaging.Lanczos)
	} else {
		base = imaging.Clone(src)
	}

	if spec.Text != "" {
		if err := stampTiles(base, spec); err != nil {
			return nil, err
		}
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, base, &jpeg.Options{Quality: int(spec.Quality * 100)}); err != nil {
		return nil, &EncodeError{Err: err}
	}
	if buf.Len() == 0 {
		return nil, &EncodeError{Err: fmt.Errorf("encoder produced no data")}
	}
	return buf.Bytes(), nil
}

// stampTiles draws the text grid on a transparent overlay, rotates the overlay
// and composites its center crop over base. Keeping the rotation on a separate
// surface means the base coordinate space is never transformed.
func stampTiles(base *image.NRGBA, spec Spec) error {
	w := base.Bounds().Dx()
	h := base.Bounds().Dy()

	fnt, err := loadFont()
	if err != nil {
		return &EncodeError{Err: fmt.Errorf("load watermark font: %w", err)}
	}

	fontSize := float64(w) * spec.FontScale
	spacing := int(float64(w) * spec.TileSpacingScale)
	if spacing < 1 {
		spacing = 1
	}

	// The overlay must still cover the full canvas after rotation. Twice the
	// canvas diagonal (plus one stride of slack for glyph extents) is enough
	// for any angle.
	side := 2 * (int(math.Ceil(math.Hypot(float64(w), float64(h)))) + spacing)
	overlay := image.NewNRGBA(image.Rect(0, 0, side, side))
	cx, cy := side/2, side/2

	alpha := uint8(math.Round(spec.Opacity * 255))
	face := truetype.NewFace(fnt, &truetype.Options{Size: fontSize, DPI: 72})
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  overlay,
		Src:  image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: alpha}),
		Face: face,
	}
	advance := drawer.MeasureString(spec.Text)
	metrics := face.Metrics()
	// Middle baseline, matching textBaseline middle with textAlign center.
	baseline := (metrics.Ascent - metrics.Descent) / 2

	// Tile across [-w, w) x [-h, h) around the canvas center so the pattern
	// survives cropping from any edge.
	for x := -w; x < w; x += spacing {
		for y := -h; y < h; y += spacing {
			drawer.Dot = fixed.Point26_6{
				X: fixed.I(cx+x) - advance/2,
				Y: fixed.I(cy+y) + baseline,
			}
			drawer.DrawString(spec.Text)
		}
	}

	// imaging.Rotate is counter-clockwise for positive angles, AngleDegrees
	// follows the clockwise y-down screen convention.
	rotated := imaging.Rotate(overlay, -spec.AngleDegrees, color.NRGBA{})
	crop := imaging.CropCenter(rotated, w, h)
	draw.Draw(base, base.Bounds(), crop, crop.Bounds().Min, draw.Over)
	return nil
}

// OutputName swaps the file extension for .jpg, matching the re-encoded format.
func OutputName(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return name + ".jpg"
	}
	return strings.TrimSuffix(name, ext) + ".jpg"
}
