// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - Processor: Extracts content and entities for one or more document types
//   - ProcessorRegistry: Dispatches a document to its processor
//   - DocumentStore: Registration and retrieval of stored documents
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - URLFetcher: Retrieves URL bodies. Without it, URL ingestion fails fast.
//   - Converter: Converts binary formats to Markdown. Without it, raw text is kept.
//   - Notifier: Reports terminal status. Without it, nothing is reported.
//   - IngestRecorder: Observes ingest outcomes for metrics.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, processor, or converter package
package driven
