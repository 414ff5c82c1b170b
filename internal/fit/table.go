package fit

// Size is one output geometry accepted by the generation API.
type Size struct {
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Aspect     string `json:"aspect_ratio"`
	Resolution string `json:"resolution"`
}

// Auto is the hint value that lets the fitter choose a label itself.
const Auto = "auto"

// Resolution tiers in ascending output-size order.
const (
	Res1K = "1K"
	Res2K = "2K"
	Res4K = "4K"
)

// aspectOrder fixes the iteration order of the table. It matches the order the
// API documents its aspect ratios in and is the tie-break order for auto fits.
var aspectOrder = []string{"1:1", "5:4", "4:5", "4:3", "3:4", "3:2", "2:3", "16:9", "9:16", "21:9"}

var resolutionOrder = []string{Res1K, Res2K, Res4K}

// dimensionTable maps aspect label -> resolution tier -> exact output pixels.
// These are the geometries the service actually renders, not the nominal
// ratio math (e.g. 3:2 @ 1K is 1264x848, not 1272x848).
var dimensionTable = map[string]map[string][2]int{
	"1:1": {
		Res1K: {1024, 1024},
		Res2K: {2048, 2048},
		Res4K: {4096, 4096},
	},
	"5:4": {
		Res1K: {1152, 928},
		Res2K: {2304, 1856},
		Res4K: {4608, 3712},
	},
	"4:5": {
		Res1K: {928, 1152},
		Res2K: {1856, 2304},
		Res4K: {3712, 4608},
	},
	"4:3": {
		Res1K: {1200, 896},
		Res2K: {2400, 1792},
		Res4K: {4800, 3584},
	},
	"3:4": {
		Res1K: {896, 1200},
		Res2K: {1792, 2400},
		Res4K: {3584, 4800},
	},
	"3:2": {
		Res1K: {1264, 848},
		Res2K: {2528, 1696},
		Res4K: {5056, 3392},
	},
	"2:3": {
		Res1K: {848, 1264},
		Res2K: {1696, 2528},
		Res4K: {3392, 5056},
	},
	"16:9": {
		Res1K: {1376, 768},
		Res2K: {2752, 1536},
		Res4K: {5504, 3072},
	},
	"9:16": {
		Res1K: {768, 1376},
		Res2K: {1536, 2752},
		Res4K: {3072, 5504},
	},
	"21:9": {
		Res1K: {1584, 672},
		Res2K: {3168, 1344},
		Res4K: {6336, 2688},
	},
}

// sizes is the flattened table in stable (aspect, resolution) order.
var sizes = buildSizes()

func buildSizes() []Size {
	out := make([]Size, 0, len(aspectOrder)*len(resolutionOrder))
	for _, ar := range aspectOrder {
		for _, res := range resolutionOrder {
			d := dimensionTable[ar][res]
			out = append(out, Size{Width: d[0], Height: d[1], Aspect: ar, Resolution: res})
		}
	}
	return out
}

// Sizes returns every supported output geometry in stable table order.
// The returned slice is a copy and may be modified by the caller.
func Sizes() []Size {
	out := make([]Size, len(sizes))
	copy(out, sizes)
	return out
}

// Lookup returns the exact geometry for an (aspect, resolution) pair.
func Lookup(aspect, resolution string) (Size, bool) {
	resMap, ok := dimensionTable[aspect]
	if !ok {
		return Size{}, false
	}
	d, ok := resMap[resolution]
	if !ok {
		return Size{}, false
	}
	return Size{Width: d[0], Height: d[1], Aspect: aspect, Resolution: resolution}, true
}

// Aspects returns the valid aspect ratio labels in table order.
func Aspects() []string {
	out := make([]string, len(aspectOrder))
	copy(out, aspectOrder)
	return out
}

// Resolutions returns the valid resolution tiers in ascending order.
func Resolutions() []string {
	out := make([]string, len(resolutionOrder))
	copy(out, resolutionOrder)
	return out
}

// MaxSizes returns the largest supported geometries by width and by height,
// used in size-exceeded error messages.
func MaxSizes() (widest, tallest Size) {
	for _, s := range sizes {
		if s.Width > widest.Width {
			widest = s
		}
		if s.Height > tallest.Height {
			tallest = s
		}
	}
	return widest, tallest
}

func validAspect(label string) bool {
	_, ok := dimensionTable[label]
	return ok
}

func validResolution(tier string) bool {
	switch tier {
	case Res1K, Res2K, Res4K:
		return true
	}
	return false
}
