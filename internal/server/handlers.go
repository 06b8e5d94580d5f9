package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/ironsheep/grime/internal/codec"
	"github.com/ironsheep/grime/internal/errors"
	"github.com/ironsheep/grime/internal/imaging"
	"github.com/ironsheep/grime/internal/ops"
	"github.com/ironsheep/grime/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_apply").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
// The error data carries the error code and message.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "err", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", toolError(err))
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the session, which reads and writes the image store
//  4. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Files
	case "image_load":
		return s.handleImageLoad(ctx, args)
	case "image_save":
		return s.handleImageSave(ctx, args)

	// Operations
	case "image_apply":
		return s.handleImageApply(ctx, args)
	case "image_script":
		return s.handleImageScript(ctx, args)

	// Store
	case "image_list":
		return s.handleImageList(ctx)
	case "image_info":
		return s.handleImageInfo(ctx, args)
	case "image_delete":
		return s.handleImageDelete(ctx, args)
	case "image_encode":
		return s.handleImageEncode(ctx, args)

	// Analysis
	case "image_sample_color":
		return s.handleImageSampleColor(ctx, args)
	case "image_dominant_colors":
		return s.handleImageDominantColors(ctx, args)
	case "image_histogram":
		return s.handleImageHistogram(ctx, args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// ToolErrorData is the data of a failed tool call.
type ToolErrorData struct {
	Code    errors.Code `json:"code,omitempty"`
	Message string      `json:"message"`
}

func toolError(err error) ToolErrorData {
	return ToolErrorData{Code: errors.GetCode(err), Message: err.Error()}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decodeArgs unmarshals tool arguments, reporting malformed JSON as an
// argument error.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidArgument, err, "malformed arguments")
	}
	return nil
}

// ImageResult names a stored image and describes it.
type ImageResult struct {
	Name string `json:"name"`
	*imaging.ImageInfo
}

func (s *Server) describe(ctx context.Context, name string) (*ImageResult, error) {
	img, err := s.session.Image(ctx, name)
	if err != nil {
		return nil, err
	}
	return &ImageResult{Name: name, ImageInfo: imaging.Info(img)}, nil
}

// === File Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

func (s *Server) handleImageLoad(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	name, err := s.session.Load(ctx, a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	return s.describe(ctx, name)
}

type imageSaveArgs struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// SaveResult reports where an image was written.
type SaveResult struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Format string `json:"format"`
}

func (s *Server) handleImageSave(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSaveArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	name, err := s.session.Save(ctx, a.Path, a.Name)
	if err != nil {
		return nil, err
	}
	f, _ := codec.FormatFromPath(a.Path)
	return &SaveResult{Name: name, Path: a.Path, Format: f.String()}, nil
}

// === Operation Handlers ===

type imageApplyArgs struct {
	Op        string   `json:"op"`
	Sources   []string `json:"sources"`
	Dests     []string `json:"dests"`
	Delta     int      `json:"delta"`
	Component string   `json:"component"`
	Seeds     *int     `json:"seeds"`
}

// ApplyResult lists the images an operation produced.
type ApplyResult struct {
	Op      string         `json:"op"`
	Outputs []*ImageResult `json:"outputs"`
}

func (s *Server) handleImageApply(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageApplyArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	op, err := ops.ParseOp(a.Op)
	if err != nil {
		return nil, err
	}
	if len(a.Sources) == 0 && op.Inputs() == 1 {
		last := s.session.Last()
		if last == "" {
			return nil, errors.New(errors.ErrCodeInvalidArgument, "no source image given and no image loaded")
		}
		a.Sources = []string{last}
	}

	opArgs := ops.Args{Delta: a.Delta}
	if a.Component != "" {
		c, err := imaging.ParseComponent(a.Component)
		if err != nil {
			return nil, err
		}
		opArgs.Component = &c
	}
	switch {
	case a.Seeds != nil:
		opArgs.Seeds = *a.Seeds
	case op == ops.Mosaic:
		opArgs.Seeds = s.session.DefaultSeeds()
	}

	names, err := s.session.Apply(ctx, op, a.Sources, a.Dests, opArgs)
	if err != nil {
		return nil, err
	}
	res := &ApplyResult{Op: op.String(), Outputs: make([]*ImageResult, len(names))}
	for i, name := range names {
		if res.Outputs[i], err = s.describe(ctx, name); err != nil {
			return nil, err
		}
	}
	return res, nil
}

type imageScriptArgs struct {
	Script string `json:"script"`
}

// ScriptResult reports the store after a script ran.
type ScriptResult struct {
	Last   string   `json:"last,omitempty"`
	Images []string `json:"images"`
	Quit   bool     `json:"quit,omitempty"`
}

func (s *Server) handleImageScript(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageScriptArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	quit := false
	if err := s.session.Run(ctx, strings.NewReader(a.Script), "script"); err != nil {
		if !stderrors.Is(err, session.ErrQuit) {
			return nil, err
		}
		quit = true
	}
	names, err := s.session.Names(ctx)
	if err != nil {
		return nil, err
	}
	return &ScriptResult{Last: s.session.Last(), Images: names, Quit: quit}, nil
}

// === Store Handlers ===

// ListResult lists stored image names.
type ListResult struct {
	Images []string `json:"images"`
	Count  int      `json:"count"`
	Last   string   `json:"last,omitempty"`
}

func (s *Server) handleImageList(ctx context.Context) (interface{}, error) {
	names, err := s.session.Names(ctx)
	if err != nil {
		return nil, err
	}
	return &ListResult{Images: names, Count: len(names), Last: s.session.Last()}, nil
}

type imageNameArgs struct {
	Name string `json:"name"`
}

func (s *Server) handleImageInfo(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	return s.describe(ctx, a.Name)
}

func (s *Server) handleImageDelete(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if err := s.session.Delete(ctx, a.Name); err != nil {
		return nil, err
	}
	return map[string]interface{}{"deleted": a.Name}, nil
}

type imageEncodeArgs struct {
	Name   string  `json:"name"`
	Format string  `json:"format"`
	Region string  `json:"region"`
	Scale  float64 `json:"scale"`
}

// EncodeResult holds an encoded image.
type EncodeResult struct {
	Name     string `json:"name"`
	Format   string `json:"format"`
	MimeType string `json:"mime_type"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	// Data is the base64-encoded file content.
	Data string `json:"data"`
}

func (s *Server) handleImageEncode(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageEncodeArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Format == "" {
		a.Format = codec.FormatPNG.String()
	}
	f, err := codec.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	img, err := s.session.Image(ctx, a.Name)
	if err != nil {
		return nil, err
	}
	if a.Region != "" {
		r, err := imaging.RegionRect(img, a.Region)
		if err != nil {
			return nil, err
		}
		if img, err = img.Crop(r); err != nil {
			return nil, err
		}
	}
	if img, err = codec.Scale(img, a.Scale); err != nil {
		return nil, err
	}
	data, err := s.session.Codec().Encode(img, f)
	if err != nil {
		return nil, err
	}
	return &EncodeResult{
		Name:     a.Name,
		Format:   f.String(),
		MimeType: f.MimeType(),
		Width:    img.Width(),
		Height:   img.Height(),
		Data:     base64.StdEncoding.EncodeToString(data),
	}, nil
}

// === Analysis Handlers ===

type imageSampleColorArgs struct {
	Name string `json:"name"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

func (s *Server) handleImageSampleColor(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageSampleColorArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.session.Image(ctx, a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.SampleColor(img, a.Row, a.Col)
}

type imageDominantColorsArgs struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (s *Server) handleImageDominantColors(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageDominantColorsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Count <= 0 {
		a.Count = 5
	}
	img, err := s.session.Image(ctx, a.Name)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"name":   a.Name,
		"colors": imaging.DominantColors(img, a.Count),
	}, nil
}

func (s *Server) handleImageHistogram(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a imageNameArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	img, err := s.session.Image(ctx, a.Name)
	if err != nil {
		return nil, err
	}
	return imaging.Histogram(img), nil
}
