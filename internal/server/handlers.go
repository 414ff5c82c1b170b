package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/bananatools/nano-banana-mcp/internal/fit"
	"github.com/bananatools/nano-banana-mcp/internal/gemini"
	"github.com/bananatools/nano-banana-mcp/internal/imaging"
)

// === Padding Calculator ===

type padCalcArgs struct {
	Path        string `json:"path"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
}

type padCalcResult struct {
	SourceWidth  int `json:"source_width"`
	SourceHeight int `json:"source_height"`
	fit.Result
}

func (s *Server) handlePadCalc(args json.RawMessage) (interface{}, error) {
	var a padCalcArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	w, h := a.Width, a.Height
	if a.Path != "" {
		img, err := s.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		b := img.Bounds()
		w, h = b.Dx(), b.Dy()
	} else if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("either path or positive width and height are required")
	}

	res, err := fit.Fit(fit.Request{
		SourceWidth:  w,
		SourceHeight: h,
		Aspect:       a.AspectRatio,
		Resolution:   a.Resolution,
	})
	if err != nil {
		return nil, err
	}

	return &padCalcResult{SourceWidth: w, SourceHeight: h, Result: *res}, nil
}

// === Padding Application ===

type padApplyArgs struct {
	Path        string `json:"path"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
	FillColor   string `json:"fill_color"`
	OnOversize  string `json:"on_oversize"`
	OutputPath  string `json:"output_path"`
}

type padApplyResult struct {
	SourceWidth  int  `json:"source_width"`
	SourceHeight int  `json:"source_height"`
	Downscaled   bool `json:"downscaled,omitempty"`
	fit.Result
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handlePadApply(args json.RawMessage) (interface{}, error) {
	var a padApplyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if a.FillColor == "" {
		a.FillColor = "#000000"
	}
	// Reject a bad fill color before any image work.
	if _, err := imaging.ParseFillColor(a.FillColor); err != nil {
		return nil, err
	}
	switch a.OnOversize {
	case "", "error", "downscale":
	default:
		return nil, fmt.Errorf("unknown on_oversize mode %q (valid: error, downscale)", a.OnOversize)
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	downscaled := false

	res, err := fit.Fit(fit.Request{
		SourceWidth:  w,
		SourceHeight: h,
		Aspect:       a.AspectRatio,
		Resolution:   a.Resolution,
	})
	if err != nil {
		if a.OnOversize != "downscale" || !isSizeError(err) {
			return nil, err
		}
		target, ok := bestDownscaleTarget(w, h, a.AspectRatio, a.Resolution)
		if !ok {
			return nil, err
		}
		img = imaging.DownscaleToFit(img, target.Width, target.Height)
		b = img.Bounds()
		w, h = b.Dx(), b.Dy()
		downscaled = true

		// Pinning both labels permits an exact fit, so the shrunken
		// image always lands in the chosen geometry.
		res, err = fit.Fit(fit.Request{
			SourceWidth:  w,
			SourceHeight: h,
			Aspect:       target.Aspect,
			Resolution:   target.Resolution,
		})
		if err != nil {
			return nil, err
		}
	}

	padded, err := imaging.Pad(img, res, a.FillColor)
	if err != nil {
		return nil, err
	}

	result := &padApplyResult{
		SourceWidth:  w,
		SourceHeight: h,
		Downscaled:   downscaled,
		Result:       *res,
	}
	if a.OutputPath != "" {
		if err := imaging.SaveImage(padded, a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
		return result, nil
	}

	data, err := imaging.EncodeImagePNG(padded)
	if err != nil {
		return nil, err
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	result.MimeType = "image/png"
	return result, nil
}

func isSizeError(err error) bool {
	var exceeded *fit.SizeExceededError
	var oversized *fit.OversizedTargetError
	return errors.As(err, &exceeded) || errors.As(err, &oversized)
}

// bestDownscaleTarget picks the hint-compatible geometry that needs the least
// shrinking, i.e. the one maximizing min(targetW/w, targetH/h).
func bestDownscaleTarget(w, h int, aspect, resolution string) (fit.Size, bool) {
	var best fit.Size
	bestScale := -1.0
	for _, size := range fit.Sizes() {
		if aspect != "" && aspect != fit.Auto && size.Aspect != aspect {
			continue
		}
		if resolution != "" && resolution != fit.Auto && size.Resolution != resolution {
			continue
		}
		scale := math.Min(float64(size.Width)/float64(w), float64(size.Height)/float64(h))
		if scale > bestScale {
			bestScale = scale
			best = size
		}
	}
	return best, bestScale > 0
}

// === Remote Generation ===

type generateArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
	Prompt      string `json:"prompt"`
	APIKey      string `json:"api_key"`
	Model       string `json:"model"`
	AspectRatio string `json:"aspect_ratio"`
	Resolution  string `json:"resolution"`
	OutputPath  string `json:"output_path"`
}

type generateResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	Model       string `json:"model"`
	OutputPath  string `json:"output_path,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

func (s *Server) handleGenerate(args json.RawMessage) (interface{}, error) {
	var a generateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Prompt == "" {
		return nil, fmt.Errorf("prompt is required")
	}

	apiKey := a.APIKey
	if apiKey == "" {
		apiKey = s.apiKey
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no api key: pass api_key or set NANO_BANANA_API_KEY")
	}

	var (
		tensor *imaging.Tensor
		err    error
	)
	switch {
	case a.Path != "":
		img, loadErr := s.cache.Load(a.Path)
		if loadErr != nil {
			return nil, loadErr
		}
		tensor = imaging.FromImage(img)
	case a.ImageBase64 != "":
		raw, decErr := base64.StdEncoding.DecodeString(a.ImageBase64)
		if decErr != nil {
			return nil, fmt.Errorf("invalid image_base64: %w", decErr)
		}
		tensor, err = imaging.DecodeToTensor(raw)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("either path or image_base64 is required")
	}

	model := a.Model
	if model == "" {
		model = gemini.DefaultModel
	}
	aspect := a.AspectRatio
	if aspect == "" {
		aspect = "1:1"
	}
	resolution := a.Resolution
	if resolution == "" {
		resolution = "1K"
	}

	out, err := s.generator.Transform(context.Background(), gemini.TransformRequest{
		Image:       tensor,
		Prompt:      a.Prompt,
		APIKey:      apiKey,
		Model:       model,
		AspectRatio: aspect,
		Resolution:  resolution,
	})
	if err != nil {
		return nil, err
	}

	result := &generateResult{Width: out.Width, Height: out.Height, Model: model}
	if a.OutputPath != "" {
		if err := imaging.SaveImage(out.ToImage(), a.OutputPath); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
		return result, nil
	}

	data, err := out.EncodePNG()
	if err != nil {
		return nil, err
	}
	result.ImageBase64 = base64.StdEncoding.EncodeToString(data)
	result.MimeType = "image/png"
	return result, nil
}

// === Table and File Helpers ===

type supportedSizesResult struct {
	Sizes        []fit.Size `json:"sizes"`
	AspectRatios []string   `json:"aspect_ratios"`
	Resolutions  []string   `json:"resolutions"`
}

func (s *Server) handleSupportedSizes(json.RawMessage) (interface{}, error) {
	return &supportedSizesResult{
		Sizes:        fit.Sizes(),
		AspectRatios: fit.Aspects(),
		Resolutions:  fit.Resolutions(),
	}, nil
}

type imageDimensionsArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageDimensionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadInfo(s.cache, a.Path)
}
