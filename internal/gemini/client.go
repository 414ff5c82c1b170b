package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bananatools/nano-banana-mcp/internal/imaging"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	apiKeyHeader   = "x-goog-api-key"

	// requestTimeout is the single fixed deadline for the whole call,
	// including connection setup and body download. Generation at 4K can
	// take well over a minute.
	requestTimeout = 120 * time.Second

	// maxErrorBody caps how much of an error response is kept for the
	// error message.
	maxErrorBody = 4 << 10
)

// DefaultModel is the model identifier used when the caller gives none.
const DefaultModel = "gemini-3-pro-image-preview"

// Models lists the image generation model identifiers the nodes offer.
var Models = []string{
	"gemini-3-pro-image-preview",
	"gemini-3-nano-image-preview",
}

// Client issues generateContent calls against the Gemini API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client against the production endpoint.
func NewClient() *Client {
	return NewClientWithBaseURL(defaultBaseURL)
}

// NewClientWithBaseURL returns a client against a custom endpoint, which
// tests use to point at a local server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// TransformRequest carries one image-to-image generation call.
type TransformRequest struct {
	// Image is the input image as a normalized tensor.
	Image *imaging.Tensor

	// Prompt is the free-text instruction for the model.
	Prompt string

	// APIKey is passed through in the request header as-is.
	APIKey string

	// Model selects the endpoint path; empty means DefaultModel.
	Model string

	// AspectRatio and Resolution are forwarded verbatim in the request's
	// imageConfig. They are not checked against the padding calculator's
	// dimension table.
	AspectRatio string
	Resolution  string
}

// Request/response wire shapes for models/{model}:generateContent. The API
// accepts snake_case field names in requests but always emits camelCase, so
// the two directions use separate types.

type generateRequest struct {
	Contents         []requestContent `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type requestContent struct {
	Parts []requestPart `json:"parts"`
}

type requestPart struct {
	Text       string         `json:"text,omitempty"`
	InlineData *requestInline `json:"inline_data,omitempty"`
}

type requestInline struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseModalities []string    `json:"responseModalities"`
	ImageConfig        imageConfig `json:"imageConfig"`
}

type imageConfig struct {
	AspectRatio string `json:"aspectRatio"`
	ImageSize   string `json:"imageSize"`
}

type generateResponse struct {
	Candidates []candidate `json:"candidates"`
}

type candidate struct {
	Content candidateContent `json:"content"`
}

type candidateContent struct {
	Parts []responsePart `json:"parts"`
}

type responsePart struct {
	Text       string          `json:"text,omitempty"`
	InlineData *responseInline `json:"inlineData,omitempty"`
}

type responseInline struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Transform sends the image and prompt to the generation service and returns
// the generated image as a normalized tensor.
//
// The call blocks until the service answers or the fixed deadline expires.
// Any non-2xx status aborts with a *TransportError; a response that parses
// but lacks the expected image payload aborts with a *ResponseShapeError.
func (c *Client) Transform(ctx context.Context, req TransformRequest) (*imaging.Tensor, error) {
	if req.Image == nil {
		return nil, fmt.Errorf("transform request has no image")
	}
	if req.APIKey == "" {
		return nil, fmt.Errorf("transform request has no api key")
	}
	model := req.Model
	if model == "" {
		model = DefaultModel
	}

	pngData, err := req.Image.EncodePNG()
	if err != nil {
		return nil, fmt.Errorf("encode input image: %w", err)
	}

	body, err := json.Marshal(generateRequest{
		Contents: []requestContent{{
			Parts: []requestPart{
				{Text: req.Prompt},
				{InlineData: &requestInline{
					MimeType: "image/png",
					Data:     base64.StdEncoding.EncodeToString(pngData),
				}},
			},
		}},
		GenerationConfig: generationConfig{
			ResponseModalities: []string{"Image"},
			ImageConfig: imageConfig{
				AspectRatio: req.AspectRatio,
				ImageSize:   req.Resolution,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(model))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(apiKeyHeader, req.APIKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	var parsed generateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &ResponseShapeError{Field: "body", Err: err}
	}
	if len(parsed.Candidates) == 0 {
		return nil, &ResponseShapeError{Field: "candidates"}
	}

	// The model may emit text parts before the image; take the first part
	// that carries image data.
	var inline *responseInline
	for _, p := range parsed.Candidates[0].Content.Parts {
		if p.InlineData != nil && p.InlineData.Data != "" {
			inline = p.InlineData
			break
		}
	}
	if inline == nil {
		return nil, &ResponseShapeError{Field: "candidates[0].content.parts[].inlineData"}
	}

	raw, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		return nil, &ResponseShapeError{Field: "inlineData.data", Err: err}
	}

	out, err := imaging.DecodeToTensor(raw)
	if err != nil {
		return nil, &ResponseShapeError{Field: "inlineData.data", Err: err}
	}
	return out, nil
}
