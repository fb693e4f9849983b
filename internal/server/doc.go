// Package server exposes the segmentation toolkit over MCP-shaped JSON-RPC
// 2.0 on stdin/stdout.
//
// The server reads newline-delimited JSON-RPC requests from stdin and
// writes responses to stdout; logging goes to stderr so the protocol stream
// stays clean. Supported methods are initialize, ping, tools/list and
// tools/call.
//
// # Tools
//
//   - image_load: decode an image into the shared cache, report dimensions
//     and format
//   - image_dimensions: report width and height without caching pixels
//   - segment_exhaustive: fixed-threshold region growing over every pixel
//   - segment_seeded: adaptive region growing from caller-supplied seeds
//   - region_stats: per-region summaries of a segmentation
//
// Tool results are JSON documents wrapped in MCP content blocks; colorized
// label maps travel as base64 PNG. Seed coordinates use the core's matrix
// convention (x = row, y = column).
//
// # Error Handling
//
// Malformed requests get JSON-RPC error responses (-32602 for bad
// parameters, -32601 for unknown methods, -32000 for tool failures). A
// seeded run that hits the iteration cap is NOT an error: the result is a
// valid partial labeling flagged by complete=false.
package server
