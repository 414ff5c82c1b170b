package fit

import "fmt"

// Request describes a source image and optional label hints. Empty hints are
// treated as "auto".
type Request struct {
	SourceWidth  int
	SourceHeight int
	Aspect       string
	Resolution   string
}

// Result is a resolved target geometry plus the symmetric padding that
// centers the source inside it.
type Result struct {
	TargetWidth  int    `json:"target_width"`
	TargetHeight int    `json:"target_height"`
	Aspect       string `json:"aspect_ratio"`
	Resolution   string `json:"resolution"`
	PadLeft      int    `json:"pad_left"`
	PadRight     int    `json:"pad_right"`
	PadTop       int    `json:"pad_top"`
	PadBottom    int    `json:"pad_bottom"`
}

// Fit selects a supported geometry for the request and computes padding.
//
// Auto modes only consider geometries that strictly contain the source, so a
// successful auto fit always pads at least one axis. When both labels are
// pinned the exact table entry is used and equality with the source is fine.
func Fit(req Request) (*Result, error) {
	w, h := req.SourceWidth, req.SourceHeight
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid source dimensions %dx%d", w, h)
	}

	aspect := req.Aspect
	if aspect == "" {
		aspect = Auto
	}
	resolution := req.Resolution
	if resolution == "" {
		resolution = Auto
	}

	if aspect != Auto && !validAspect(aspect) {
		return nil, &UnknownParameterError{Param: "aspect_ratio", Value: aspect, Valid: append([]string{Auto}, Aspects()...)}
	}
	if resolution != Auto && !validResolution(resolution) {
		return nil, &UnknownParameterError{Param: "resolution", Value: resolution, Valid: append([]string{Auto}, Resolutions()...)}
	}

	var (
		target Size
		err    error
	)
	switch {
	case aspect == Auto && resolution == Auto:
		target, err = fitAuto(w, h)
	case aspect != Auto && resolution == Auto:
		target, err = fitAspect(w, h, aspect)
	case aspect == Auto:
		target, err = fitResolution(w, h, resolution)
	default:
		target, err = fitExact(w, h, aspect, resolution)
	}
	if err != nil {
		return nil, err
	}

	padH := target.Width - w
	padV := target.Height - h
	res := &Result{
		TargetWidth:  target.Width,
		TargetHeight: target.Height,
		Aspect:       target.Aspect,
		Resolution:   target.Resolution,
		PadLeft:      padH / 2,
		PadTop:       padV / 2,
	}
	// Odd remainders land on the right and bottom edges.
	res.PadRight = padH - res.PadLeft
	res.PadBottom = padV - res.PadTop
	return res, nil
}

// fitAuto picks the smallest-area geometry that strictly contains the source.
// Ties keep the earliest table entry.
func fitAuto(w, h int) (Size, error) {
	var best Size
	found := false
	for _, s := range sizes {
		if !strictlyContains(s, w, h) {
			continue
		}
		if !found || area(s) < area(best) {
			best = s
			found = true
		}
	}
	if !found {
		return Size{}, &SizeExceededError{SourceWidth: w, SourceHeight: h}
	}
	return best, nil
}

// fitAspect walks the tiers of one aspect label in ascending order and takes
// the first that strictly contains the source.
func fitAspect(w, h int, aspect string) (Size, error) {
	for _, res := range resolutionOrder {
		s, _ := Lookup(aspect, res)
		if strictlyContains(s, w, h) {
			return s, nil
		}
	}
	return Size{}, &SizeExceededError{SourceWidth: w, SourceHeight: h, Aspect: aspect}
}

// fitResolution picks the smallest-area aspect at a pinned tier. Equal areas
// are broken by the aspect label's sort order.
func fitResolution(w, h int, resolution string) (Size, error) {
	var best Size
	found := false
	for _, s := range sizes {
		if s.Resolution != resolution || !strictlyContains(s, w, h) {
			continue
		}
		if !found || area(s) < area(best) || (area(s) == area(best) && s.Aspect < best.Aspect) {
			best = s
			found = true
		}
	}
	if !found {
		return Size{}, &SizeExceededError{SourceWidth: w, SourceHeight: h, Resolution: resolution}
	}
	return best, nil
}

// fitExact looks up a pinned (aspect, resolution) pair. Unlike the auto
// modes, a target exactly equal to the source is accepted.
func fitExact(w, h int, aspect, resolution string) (Size, error) {
	s, ok := Lookup(aspect, resolution)
	if !ok {
		// Every aspect in the table carries all three tiers, so with both
		// labels individually validated this is unreachable. Kept for safety
		// against future table edits.
		return Size{}, &UnknownParameterError{Param: "resolution", Value: resolution, Valid: Resolutions()}
	}
	if s.Width < w || s.Height < h {
		return Size{}, &OversizedTargetError{SourceWidth: w, SourceHeight: h, Target: s}
	}
	return s, nil
}

func strictlyContains(s Size, w, h int) bool {
	return s.Width >= w && s.Height >= h && (s.Width > w || s.Height > h)
}

func area(s Size) int {
	return s.Width * s.Height
}
