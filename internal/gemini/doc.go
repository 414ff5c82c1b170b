// Package gemini implements the remote image transform: one synchronous call
// to the Gemini generateContent endpoint that sends an image plus a text
// instruction and returns the generated image.
//
// The client is deliberately thin. It performs a single HTTP POST with a
// fixed deadline, passes the caller's API key through in the x-goog-api-key
// header, and does no retrying, batching, or response caching. Aspect ratio
// and resolution strings are forwarded to the service verbatim; the service's
// parameter space is looser than the padding calculator's table, so they are
// not validated here.
//
// Failures split into two types: TransportError for any non-2xx HTTP status
// (carrying status and body) and ResponseShapeError when an expected field is
// missing or malformed in an otherwise successful response.
package gemini
