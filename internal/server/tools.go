package server

import (
	"strings"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/ops"
	"github.com/ironsheep/grime/internal/session"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func nameProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

func opNames() []string {
	names := make([]string, len(ops.All))
	for i, op := range ops.All {
		names[i] = op.String()
	}
	return names
}

func componentNames() []string {
	names := make([]string, len(imaging.Components))
	for i, c := range imaging.Components {
		names[i] = strings.TrimSuffix(c.String(), "-component")
	}
	return names
}

func formatNames() []string {
	names := make([]string, len(codec.Formats))
	for i, f := range codec.Formats {
		names[i] = f.String()
	}
	return names
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Files
		{
			Name:        "image_load",
			Description: "Load an image file (.ppm plain text, .png, .jpg, .bmp) into the image store under a name. Returns the stored name and image metadata.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"name": nameProperty("Name to store the image under (default: file name without extension)"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_save",
			Description: "Write a stored image to a file. The file extension selects the format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path of the file to write; the folder must exist",
					},
					"name": nameProperty("Stored image to save (default: last produced image)"),
				},
				"required": []string{"path"},
			},
		},

		// Operations
		{
			Name:        "image_apply",
			Description: "Apply an image operation to stored images and store the results. split produces three greyscale images (red, green, blue); combine takes three greyscale sources in red, green, blue order.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"op": map[string]interface{}{
						"type":        "string",
						"description": "Operation to apply",
						"enum":        opNames(),
					},
					"sources": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Stored source images (default: the last produced image, for single-input operations)",
					},
					"dests": map[string]interface{}{
						"type":        "array",
						"items":       map[string]interface{}{"type": "string"},
						"description": "Names for the results; missing names are generated",
					},
					"delta": map[string]interface{}{
						"type":        "integer",
						"description": "Brightness change for brighten; negative darkens",
					},
					"component": map[string]interface{}{
						"type":        "string",
						"description": "Scalar used by greyscale (default: luma transform)",
						"enum":        componentNames(),
					},
					"seeds": map[string]interface{}{
						"type":        "integer",
						"description": "Number of mosaic regions (default: 1000)",
						"minimum":     1,
					},
				},
				"required": []string{"op"},
			},
		},
		{
			Name:        "image_script",
			Description: "Run script commands, one per line, against the image store. Execution stops at the first failing line.\n\n" + session.HelpText,
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"script": map[string]interface{}{
						"type":        "string",
						"description": "Script text, e.g. \"load /tmp/a.png a\\nblur a b\\nsave /tmp/b.png b\"",
					},
				},
				"required": []string{"script"},
			},
		},

		// Store
		{
			Name:        "image_list",
			Description: "List the names of stored images.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "image_info",
			Description: "Get the size, channel bound and greyscale status of a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "image_delete",
			Description: "Remove a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "image_encode",
			Description: "Encode a stored image and return it base64-encoded. Use this to view an intermediate result, optionally zoomed into a region.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
					"format": map[string]interface{}{
						"type":        "string",
						"description": "Output format (default: png)",
						"enum":        formatNames(),
					},
					"region": map[string]interface{}{
						"type":        "string",
						"description": "Encode only this part of the image (default: whole image)",
						"enum":        imaging.Regions,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Resize factor, e.g. 2 to zoom in (default: 1)",
						"minimum":     0,
						"maximum":     codec.MaxScale,
					},
				},
				"required": []string{"name"},
			},
		},

		// Analysis
		{
			Name:        "image_sample_color",
			Description: "Get the color of one pixel as hex, RGB and HSL, plus its value, intensity and luma.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
					"row": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel row (0 is the top)",
					},
					"col": map[string]interface{}{
						"type":        "integer",
						"description": "Pixel column (0 is the left)",
					},
				},
				"required": []string{"name", "row", "col"},
			},
		},
		{
			Name:        "image_dominant_colors",
			Description: "List the most frequent colors of a stored image with their share of pixels. Most useful on mosaic output.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
					"count": map[string]interface{}{
						"type":        "integer",
						"description": "Number of colors to return (default: 5)",
						"minimum":     1,
					},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "image_histogram",
			Description: "Count pixels per channel value (256 bins each for red, green, blue and intensity) over the 8-bit rendition of a stored image.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"name": nameProperty("Stored image name"),
				},
				"required": []string{"name"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
