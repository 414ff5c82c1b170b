package imaging

import (
	"bytes"
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// Tensor is the normalized float representation images use when crossing the
// node boundary: batch x height x width x channel, RGB, values in [0, 1].
// The batch dimension is always 1; it is kept explicit so the layout matches
// what the host runtime exchanges with generation backends.
type Tensor struct {
	Batch    int
	Height   int
	Width    int
	Channels int
	Data     []float32
}

// NewTensor allocates a zeroed batch-of-one RGB tensor.
func NewTensor(height, width int) *Tensor {
	return &Tensor{
		Batch:    1,
		Height:   height,
		Width:    width,
		Channels: 3,
		Data:     make([]float32, height*width*3),
	}
}

// At returns the value at (y, x, c) for the first batch entry.
func (t *Tensor) At(y, x, c int) float32 {
	return t.Data[(y*t.Width+x)*t.Channels+c]
}

// Set stores a value at (y, x, c) for the first batch entry.
func (t *Tensor) Set(y, x, c int, v float32) {
	t.Data[(y*t.Width+x)*t.Channels+c] = v
}

// FromImage converts a decoded image to a normalized RGB tensor. Alpha is
// discarded; 16-bit sources are reduced to 8-bit precision first.
func FromImage(img image.Image) *Tensor {
	// Clone normalizes any image type to NRGBA with a zero-origin bounds.
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	t := NewTensor(b.Dy(), b.Dx())

	for y := 0; y < t.Height; y++ {
		row := nrgba.Pix[y*nrgba.Stride:]
		for x := 0; x < t.Width; x++ {
			p := row[x*4:]
			i := (y*t.Width + x) * 3
			t.Data[i] = float32(p[0]) / 255
			t.Data[i+1] = float32(p[1]) / 255
			t.Data[i+2] = float32(p[2]) / 255
		}
	}
	return t
}

// ToImage converts a tensor back to an 8-bit image. Values are clamped to
// [0, 1] before quantization.
func (t *Tensor) ToImage() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, t.Width, t.Height))
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			i := (y*t.Width + x) * 3
			o := y*out.Stride + x*4
			out.Pix[o] = quantize(t.Data[i])
			out.Pix[o+1] = quantize(t.Data[i+1])
			out.Pix[o+2] = quantize(t.Data[i+2])
			out.Pix[o+3] = 255
		}
	}
	return out
}

func quantize(v float32) uint8 {
	f := float64(v)
	if f < 0 {
		f = 0
	} else if f > 1 {
		f = 1
	}
	return uint8(math.Round(f * 255))
}

// EncodePNG renders a tensor as PNG bytes.
func (t *Tensor) EncodePNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, t.ToImage(), imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeImagePNG renders any image as PNG bytes.
func EncodeImagePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveImage writes img to path, with the format inferred from the file
// extension.
func SaveImage(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// DecodeToTensor decodes encoded image bytes (any registered format) into a
// normalized tensor.
func DecodeToTensor(data []byte) (*Tensor, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img), nil
}
