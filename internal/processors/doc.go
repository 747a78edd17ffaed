// Package processors provides the registry that routes a classified
// document to its content-type processor, and the default wiring of the
// built-in processors and converters.
//
// Each processor lives in its own sub-package:
//
//   - structured: JSON and JSON-LD entity walker
//   - rdf: angle-bracketed IRI extractor
//   - markdown: heading and inline code extractor
//   - binary: PDF and CSV conversion with raw-text fallback
//   - plaintext: passthrough for text, ppt and anything else
package processors
