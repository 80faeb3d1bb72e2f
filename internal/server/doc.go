// Package server implements the MCP (Model Context Protocol) server for the
// infographic tools.
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
//   - infographic_languages: Supported languages and whether their fonts are installed
//   - infographic_translate: Translate English text into a supported language
//   - infographic_render: Render already-translated text onto a bordered canvas
//   - infographic_generate: Translate and render in one call
//   - infographic_verify: Check a rendered PNG for border, centering and legible text
//
// Render and generate return the PNG as an MCP image content item next to a
// JSON summary of the layout. With "save" set the file is also written to
// the configured output directory.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The error string, followed by a remediation hint for missing fonts
//
// No translation request is made when the language, canvas or font check
// fails.
//
// # Usage
//
//	srv := server.New(generator, server.Options{OutputDir: "out"})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
