package imaging

import (
	"fmt"
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/transform"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/bananatools/nano-banana-mcp/internal/fit"
)

// Pad places img on a canvas of the fit's target size, offset by the fit's
// left/top padding and surrounded by the fill color. The fill is a "#RRGGBB"
// hex string.
//
// The fit must have been computed for img's dimensions; the offsets are
// applied as-is.
func Pad(img image.Image, f *fit.Result, fillHex string) (*image.NRGBA, error) {
	fill, err := ParseFillColor(fillHex)
	if err != nil {
		return nil, err
	}

	canvas := imaging.New(f.TargetWidth, f.TargetHeight, fill)
	return imaging.Paste(canvas, img, image.Pt(f.PadLeft, f.PadTop)), nil
}

// ParseFillColor parses a "#RRGGBB" hex string into an opaque color.
func ParseFillColor(hex string) (color.NRGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid fill color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}

// DownscaleToFit shrinks img proportionally until it fits within maxWidth x
// maxHeight. Images that already fit are returned unchanged; upscaling never
// happens.
func DownscaleToFit(img image.Image, maxWidth, maxHeight int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= maxWidth && h <= maxHeight {
		return img
	}

	scale := float64(maxWidth) / float64(w)
	if s := float64(maxHeight) / float64(h); s < scale {
		scale = s
	}

	nw := int(float64(w) * scale)
	nh := int(float64(h) * scale)
	if nw < 1 {
		nw = 1
	}
	if nh < 1 {
		nh = 1
	}
	return transform.Resize(img, nw, nh, transform.Lanczos)
}
