package fit

import (
	"errors"
	"testing"
)

func TestFit_AutoAuto_SmallestContainer(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		wantW, wantH   int
		wantAspect     string
		wantResolution string
	}{
		{"square 1000", 1000, 1000, 1024, 1024, "1:1", "1K"},
		{"small landscape", 1300, 700, 1376, 768, "16:9", "1K"},
		{"small portrait", 700, 1300, 768, 1376, "9:16", "1K"},
		{"wide banner", 1500, 600, 1584, 672, "21:9", "1K"},
		{"needs 2K", 2000, 2000, 2048, 2048, "1:1", "2K"},
		{"tiny", 10, 10, 1024, 1024, "1:1", "1K"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Fit(Request{SourceWidth: tt.w, SourceHeight: tt.h})
			if err != nil {
				t.Fatalf("Fit returned error: %v", err)
			}
			if res.TargetWidth != tt.wantW || res.TargetHeight != tt.wantH {
				t.Errorf("target: got %dx%d, want %dx%d", res.TargetWidth, res.TargetHeight, tt.wantW, tt.wantH)
			}
			if res.Aspect != tt.wantAspect || res.Resolution != tt.wantResolution {
				t.Errorf("labels: got %s @ %s, want %s @ %s", res.Aspect, res.Resolution, tt.wantAspect, tt.wantResolution)
			}
		})
	}
}

func TestFit_AutoAuto_IsMinimumArea(t *testing.T) {
	// For a sample of source sizes, the chosen target must be the
	// smallest-area table entry that strictly contains the source.
	sources := [][2]int{{100, 100}, {900, 1100}, {1024, 768}, {1900, 850}, {3000, 1200}, {4000, 4000}}

	for _, src := range sources {
		w, h := src[0], src[1]
		res, err := Fit(Request{SourceWidth: w, SourceHeight: h})
		if err != nil {
			t.Fatalf("Fit(%dx%d) returned error: %v", w, h, err)
		}
		if res.TargetWidth < w || res.TargetHeight < h {
			t.Errorf("Fit(%dx%d): target %dx%d does not contain source", w, h, res.TargetWidth, res.TargetHeight)
		}
		got := res.TargetWidth * res.TargetHeight
		for _, s := range Sizes() {
			if strictlyContains(s, w, h) && s.Width*s.Height < got {
				t.Errorf("Fit(%dx%d): chose %dx%d but %dx%d (%s @ %s) is smaller",
					w, h, res.TargetWidth, res.TargetHeight, s.Width, s.Height, s.Aspect, s.Resolution)
			}
		}
	}
}

func TestFit_AutoExcludesExactMatch(t *testing.T) {
	// 1024x1024 is in the table, but auto mode requires strict growth.
	res, err := Fit(Request{SourceWidth: 1024, SourceHeight: 1024})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.TargetWidth != 2048 || res.TargetHeight != 2048 {
		t.Errorf("target: got %dx%d, want 2048x2048", res.TargetWidth, res.TargetHeight)
	}
	if res.Resolution != "2K" {
		t.Errorf("resolution: got %s, want 2K", res.Resolution)
	}
}

func TestFit_PaddingArithmetic(t *testing.T) {
	res, err := Fit(Request{SourceWidth: 1000, SourceHeight: 1000})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.PadLeft != 12 || res.PadRight != 12 || res.PadTop != 12 || res.PadBottom != 12 {
		t.Errorf("pads: got (%d,%d,%d,%d), want (12,12,12,12)",
			res.PadLeft, res.PadRight, res.PadTop, res.PadBottom)
	}
}

func TestFit_OddRemainderGoesRightAndBottom(t *testing.T) {
	res, err := Fit(Request{SourceWidth: 1001, SourceHeight: 1003, Aspect: "1:1", Resolution: "1K"})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.PadLeft != 11 || res.PadRight != 12 {
		t.Errorf("horizontal pads: got (%d,%d), want (11,12)", res.PadLeft, res.PadRight)
	}
	if res.PadTop != 10 || res.PadBottom != 11 {
		t.Errorf("vertical pads: got (%d,%d), want (10,11)", res.PadTop, res.PadBottom)
	}
}

func TestFit_PadSumsMatchSlack(t *testing.T) {
	reqs := []Request{
		{SourceWidth: 640, SourceHeight: 480},
		{SourceWidth: 1921, SourceHeight: 1079},
		{SourceWidth: 333, SourceHeight: 777, Resolution: "2K"},
		{SourceWidth: 2000, SourceHeight: 800, Aspect: "21:9"},
		{SourceWidth: 1024, SourceHeight: 1024, Aspect: "1:1", Resolution: "4K"},
	}

	for _, req := range reqs {
		res, err := Fit(req)
		if err != nil {
			t.Fatalf("Fit(%+v) returned error: %v", req, err)
		}
		if res.PadLeft+res.PadRight != res.TargetWidth-req.SourceWidth {
			t.Errorf("Fit(%+v): horizontal pads %d+%d != slack %d",
				req, res.PadLeft, res.PadRight, res.TargetWidth-req.SourceWidth)
		}
		if res.PadTop+res.PadBottom != res.TargetHeight-req.SourceHeight {
			t.Errorf("Fit(%+v): vertical pads %d+%d != slack %d",
				req, res.PadTop, res.PadBottom, res.TargetHeight-req.SourceHeight)
		}
	}
}

func TestFit_AspectFixed_AscendingTiers(t *testing.T) {
	// 1K 21:9 is 1584x672, too short for 800px; 2K (3168x1344) is the first fit.
	res, err := Fit(Request{SourceWidth: 2000, SourceHeight: 800, Aspect: "21:9"})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.Resolution != "2K" || res.TargetWidth != 3168 || res.TargetHeight != 1344 {
		t.Errorf("got %dx%d @ %s, want 3168x1344 @ 2K", res.TargetWidth, res.TargetHeight, res.Resolution)
	}
}

func TestFit_AspectFixed_TooLarge(t *testing.T) {
	_, err := Fit(Request{SourceWidth: 7000, SourceHeight: 3000, Aspect: "21:9"})
	var sizeErr *SizeExceededError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected SizeExceededError, got %v", err)
	}
	if sizeErr.Aspect != "21:9" {
		t.Errorf("error aspect: got %q, want 21:9", sizeErr.Aspect)
	}
}

func TestFit_ResolutionFixed_SmallestAspect(t *testing.T) {
	res, err := Fit(Request{SourceWidth: 1000, SourceHeight: 1000, Resolution: "2K"})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.TargetWidth != 2048 || res.TargetHeight != 2048 || res.Aspect != "1:1" {
		t.Errorf("got %dx%d (%s), want 2048x2048 (1:1)", res.TargetWidth, res.TargetHeight, res.Aspect)
	}
}

func TestFit_ResolutionFixed_TooLarge(t *testing.T) {
	_, err := Fit(Request{SourceWidth: 6000, SourceHeight: 3000, Resolution: "1K"})
	var sizeErr *SizeExceededError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected SizeExceededError, got %v", err)
	}
	if sizeErr.Resolution != "1K" {
		t.Errorf("error resolution: got %q, want 1K", sizeErr.Resolution)
	}
}

func TestFit_BothFixed_ExactMatchZeroPadding(t *testing.T) {
	res, err := Fit(Request{SourceWidth: 1024, SourceHeight: 1024, Aspect: "1:1", Resolution: "1K"})
	if err != nil {
		t.Fatalf("Fit returned error: %v", err)
	}
	if res.PadLeft != 0 || res.PadRight != 0 || res.PadTop != 0 || res.PadBottom != 0 {
		t.Errorf("pads: got (%d,%d,%d,%d), want all zero",
			res.PadLeft, res.PadRight, res.PadTop, res.PadBottom)
	}
}

func TestFit_BothFixed_Oversized(t *testing.T) {
	_, err := Fit(Request{SourceWidth: 3000, SourceHeight: 3000, Aspect: "1:1", Resolution: "1K"})
	var oversized *OversizedTargetError
	if !errors.As(err, &oversized) {
		t.Fatalf("expected OversizedTargetError, got %v", err)
	}
	if oversized.Target.Width != 1024 || oversized.Target.Height != 1024 {
		t.Errorf("error target: got %dx%d, want 1024x1024", oversized.Target.Width, oversized.Target.Height)
	}
}

func TestFit_UnknownAspect(t *testing.T) {
	_, err := Fit(Request{SourceWidth: 500, SourceHeight: 500, Aspect: "7:3", Resolution: "1K"})
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %v", err)
	}
	if unknown.Param != "aspect_ratio" || unknown.Value != "7:3" {
		t.Errorf("error fields: got %s=%q", unknown.Param, unknown.Value)
	}
}

func TestFit_UnknownResolution(t *testing.T) {
	_, err := Fit(Request{SourceWidth: 500, SourceHeight: 500, Resolution: "8K"})
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownParameterError, got %v", err)
	}
	if unknown.Param != "resolution" || unknown.Value != "8K" {
		t.Errorf("error fields: got %s=%q", unknown.Param, unknown.Value)
	}
}

func TestFit_SizeExceededRegardlessOfHints(t *testing.T) {
	reqs := []Request{
		{SourceWidth: 7000, SourceHeight: 6000},
		{SourceWidth: 7000, SourceHeight: 6000, Aspect: "1:1"},
		{SourceWidth: 7000, SourceHeight: 6000, Resolution: "4K"},
	}
	for _, req := range reqs {
		_, err := Fit(req)
		var sizeErr *SizeExceededError
		if !errors.As(err, &sizeErr) {
			t.Errorf("Fit(%+v): expected SizeExceededError, got %v", req, err)
		}
	}
}

func TestFit_InvalidSourceDimensions(t *testing.T) {
	for _, src := range [][2]int{{0, 100}, {100, 0}, {-1, 100}} {
		if _, err := Fit(Request{SourceWidth: src[0], SourceHeight: src[1]}); err == nil {
			t.Errorf("Fit(%dx%d): expected error", src[0], src[1])
		}
	}
}
