package server

import (
	"encoding/json"
	"strings"

	"github.com/bananatools/nano-banana-mcp/internal/fit"
	"github.com/bananatools/nano-banana-mcp/internal/gemini"
)

// Node is one plugin the host exposes as an MCP tool: a name, a display
// category, a typed JSON input schema, and the entry point that consumes
// decoded arguments and produces a JSON-serializable result.
type Node struct {
	Name        string
	Description string
	Category    string
	InputSchema map[string]interface{}
	Handler     func(s *Server, args json.RawMessage) (interface{}, error)
}

// buildRegistry assembles the node table. The returned map is the dispatch
// index; the slice preserves registration order for tools/list.
func buildRegistry() (map[string]Node, []string) {
	nodes := []Node{
		{
			Name: "nano_banana_pad",
			Description: "Compute the padding needed to center an image inside the nearest supported " +
				"Nano Banana output size. Give either a file path or explicit width/height. " +
				"Returns pad offsets, the target dimensions, and the resolved aspect ratio and resolution.",
			Category:    "image/padding",
			InputSchema: padCalcSchema(),
			Handler:     (*Server).handlePadCalc,
		},
		{
			Name: "nano_banana_pad_apply",
			Description: "Pad an image file to the nearest supported Nano Banana output size and return " +
				"it as base64 PNG (or save it to output_path). The fill color is a #RRGGBB hex string. " +
				"Set on_oversize to \"downscale\" to shrink images that exceed every supported size " +
				"instead of failing.",
			Category:    "image/padding",
			InputSchema: padApplySchema(),
			Handler:     (*Server).handlePadApply,
		},
		{
			Name: "nano_banana_generate",
			Description: "Send an image and a text instruction to a Gemini image generation model and " +
				"return the generated image as base64 PNG (or save it to output_path). The input image " +
				"is given as a file path or base64 data. Requires a Gemini API key, either as an " +
				"argument or via the NANO_BANANA_API_KEY environment variable.",
			Category:    "image/generate",
			InputSchema: generateSchema(),
			Handler:     (*Server).handleGenerate,
		},
		{
			Name: "nano_banana_supported_sizes",
			Description: "List every output geometry the Nano Banana models support: width, height, " +
				"aspect ratio label, and resolution tier.",
			Category:    "image/padding",
			InputSchema: emptySchema(),
			Handler:     (*Server).handleSupportedSizes,
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			Category:    "image/info",
			InputSchema: pathOnlySchema(),
			Handler:     (*Server).handleImageDimensions,
		},
	}

	index := make(map[string]Node, len(nodes))
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		index[n.Name] = n
		order = append(order, n.Name)
	}
	return index, order
}

func padCalcSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the image file. Alternative to width/height.",
			},
			"width": map[string]interface{}{
				"type":        "integer",
				"description": "Source width in pixels. Ignored when path is given.",
			},
			"height": map[string]interface{}{
				"type":        "integer",
				"description": "Source height in pixels. Ignored when path is given.",
			},
			"aspect_ratio": map[string]interface{}{
				"type":        "string",
				"description": "Target aspect ratio (" + strings.Join(fit.Aspects(), ", ") + ") or \"auto\".",
				"default":     "auto",
			},
			"resolution": map[string]interface{}{
				"type":        "string",
				"description": "Target resolution tier (1K, 2K, 4K) or \"auto\".",
				"default":     "auto",
			},
		},
	}
}

func padApplySchema() map[string]interface{} {
	schema := padCalcSchema()
	props := schema["properties"].(map[string]interface{})
	delete(props, "width")
	delete(props, "height")
	props["fill_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Padding fill color as #RRGGBB hex.",
		"default":     "#000000",
	}
	props["on_oversize"] = map[string]interface{}{
		"type":        "string",
		"description": "What to do when the image exceeds the target: \"error\" or \"downscale\".",
		"default":     "error",
	}
	props["output_path"] = map[string]interface{}{
		"type":        "string",
		"description": "Save the padded image here instead of returning base64 data.",
	}
	schema["required"] = []string{"path"}
	return schema
}

func generateSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Path to the input image file. Alternative to image_base64.",
			},
			"image_base64": map[string]interface{}{
				"type":        "string",
				"description": "Input image as base64-encoded PNG/JPEG. Alternative to path.",
			},
			"prompt": map[string]interface{}{
				"type":        "string",
				"description": "Text instruction for the model.",
			},
			"api_key": map[string]interface{}{
				"type":        "string",
				"description": "Gemini API key. Falls back to NANO_BANANA_API_KEY.",
			},
			"model": map[string]interface{}{
				"type":        "string",
				"description": "Model identifier (" + strings.Join(gemini.Models, ", ") + ").",
				"default":     gemini.DefaultModel,
			},
			"aspect_ratio": map[string]interface{}{
				"type":        "string",
				"description": "Requested output aspect ratio, passed to the service verbatim.",
				"default":     "1:1",
			},
			"resolution": map[string]interface{}{
				"type":        "string",
				"description": "Requested output resolution, passed to the service verbatim.",
				"default":     "1K",
			},
			"output_path": map[string]interface{}{
				"type":        "string",
				"description": "Save the generated image here instead of returning base64 data.",
			},
		},
		"required": []string{"prompt"},
	}
}

func pathOnlySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Absolute path to the image file",
			},
		},
		"required": []string{"path"},
	}
}

func emptySchema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}
