// Package converters holds the Markdown converters used by the binary
// processor and the URL pipeline. Each converter implements driven.Converter
// and lives in its own sub-package.
package converters
