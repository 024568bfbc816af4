// Package pipeline implements the content-body pipeline submitted for speech synthesis.
//
// This package handles segmentation, marker injection, and body assembly:
//   - Block selection (blocks with audioEnabled=false are skipped)
//   - Block rendering through a host BlockRenderer
//   - Marker injection into the first root element of each rendered block
//   - Summary wrapper composition from the document excerpt
//   - Content filter chains (paragraph wrapping, shortcodes)
//
// Marker injection has two interchangeable engines behind AttributeInjector:
// a streaming tag processor that splices the attribute into the original bytes,
// and a DOM engine that locates the root by parsing and splices back only its
// rendered start tag. The engine is
// chosen once by a canary check, never per call.
package pipeline
