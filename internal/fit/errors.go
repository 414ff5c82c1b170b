package fit

import (
	"fmt"
	"strings"
)

// UnknownParameterError reports an aspect ratio or resolution label that is
// not in the supported table.
type UnknownParameterError struct {
	Param string // "aspect_ratio" or "resolution"
	Value string
	Valid []string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("unknown %s %q (valid: %s)", e.Param, e.Value, strings.Join(e.Valid, ", "))
}

// SizeExceededError reports a source image that no candidate geometry can
// contain under the requested hints.
type SizeExceededError struct {
	SourceWidth  int
	SourceHeight int
	Aspect       string // non-empty when the aspect hint was pinned
	Resolution   string // non-empty when the resolution hint was pinned
}

func (e *SizeExceededError) Error() string {
	src := fmt.Sprintf("image %dx%d", e.SourceWidth, e.SourceHeight)
	switch {
	case e.Aspect != "":
		return fmt.Sprintf("%s too large for aspect ratio %s at any resolution", src, e.Aspect)
	case e.Resolution != "":
		return fmt.Sprintf("%s too large for resolution %s; choose a higher resolution", src, e.Resolution)
	default:
		widest, tallest := MaxSizes()
		return fmt.Sprintf("%s exceeds all supported sizes; maximum is %dx%d (%s @ %s) or %dx%d (%s @ %s)",
			src, widest.Width, widest.Height, widest.Aspect, widest.Resolution,
			tallest.Width, tallest.Height, tallest.Aspect, tallest.Resolution)
	}
}

// OversizedTargetError reports an explicitly pinned target that is smaller
// than the source image in at least one dimension.
type OversizedTargetError struct {
	SourceWidth  int
	SourceHeight int
	Target       Size
}

func (e *OversizedTargetError) Error() string {
	return fmt.Sprintf("image %dx%d is larger than target %dx%d (%s @ %s); choose a higher resolution or different aspect ratio",
		e.SourceWidth, e.SourceHeight, e.Target.Width, e.Target.Height, e.Target.Aspect, e.Target.Resolution)
}
