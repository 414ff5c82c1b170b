// Package imaging provides the image plumbing shared by the server's nodes:
// cached file loading, conversion between decoded images and the normalized
// float tensor convention, PNG encoding, and padding application.
//
// # Tensor Convention
//
// Images cross the node boundary as normalized float tensors: batch x height
// x width x channel, RGB order, values in [0, 1]. The batch dimension is
// always 1. FromImage/ToImage convert between this layout and standard Go
// image types through 8-bit RGB.
//
// # Caching
//
// The Cache type stores decoded images by file path so a sequence of tool
// calls against the same file (dimensions, then pad, then generate) decodes
// it once. It caches local file reads only; generation API responses are
// never cached.
//
// # Thread Safety
//
// Cache is safe for concurrent use. Tensors and pad operations are plain
// value transformations with no shared state.
package imaging
