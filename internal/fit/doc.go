// Package fit maps arbitrary image dimensions onto the output geometries
// supported by the Nano Banana (Gemini image generation) API.
//
// The API accepts ten aspect ratio labels at three resolution tiers (1K, 2K,
// 4K), each pair corresponding to one exact pixel geometry. This package holds
// that table and implements the selection policy used by the padding
// calculator node:
//
//   - Both hints "auto": smallest-area table entry that strictly contains the
//     source.
//   - Aspect fixed: smallest resolution tier of that aspect that strictly
//     contains the source.
//   - Resolution fixed: smallest-area aspect at that tier that strictly
//     contains the source.
//   - Both fixed: exact lookup; equality with the source is allowed.
//
// "Strictly contains" means both target dimensions are at least the source
// dimensions and at least one is strictly greater. Auto modes exclude exact
// matches so that a successful fit always produces real padding.
//
// Padding is split evenly per axis; an odd remainder goes to the right and
// bottom edges.
//
// All data is package-level and read-only, so every function is safe for
// concurrent use.
package fit
