// Package mcp contains the protocol data types shared by prompt capability
// implementations and their callers. It mirrors the wire representation of
// the prompts surface of the Model Context Protocol while keeping the
// surface Go-friendly (exported structs with json tags, string constants
// for enumerations).
//
// The package is intentionally free of behavior: argument resolution lives
// in promptargs, dispatch and containers live in promptservice. Both import
// these types and hand them to whatever transport the caller provides for
// serialization. Message sequences (PromptMessage and its content blocks)
// are a pass-through contract: this library shapes them but never computes
// or interprets their content.
package mcp
