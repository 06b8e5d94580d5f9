// Package server implements the MCP (Model Context Protocol) server for grime.
//
// The server exposes a session over a named-image store as JSON-RPC 2.0
// tools, so an MCP client can load images, chain operations between stored
// names and save or inspect the results.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Files:
//   - image_load: Read a .ppm, .png, .jpg or .bmp file into the store
//   - image_save: Write a stored image; the extension selects the format
//
// Operations:
//   - image_apply: Run flip-h, flip-v, brighten, greyscale, split, combine,
//     blur, sharpen, sepia, dither or mosaic between stored names
//   - image_script: Run script commands, one per line
//
// Store:
//   - image_list: Stored names
//   - image_info: Size, channel bound and greyscale status
//   - image_delete: Remove a stored image
//   - image_encode: Base64 file content of a stored image
//
// Analysis:
//   - image_sample_color: Color at a pixel
//   - image_dominant_colors: Most frequent colors
//   - image_histogram: Per-channel value counts
//
// # Image Store
//
// Images live in the session's store, in memory or in Redis depending on
// configuration. Names persist across tool calls; operations that omit
// destination names generate them.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error code (e.g. INVALID_KERNEL, NOT_FOUND) and message
//
// # Usage
//
//	srv := server.New(sess, logger)
//	if err := srv.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    return err
//	}
package server
