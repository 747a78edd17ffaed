// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
//   - IngestService: classify, process, register and notify
//   - DocumentService: registration and retrieval of stored documents
//   - SettingsService: typed settings over a ConfigStore
//
// Services are pure Go with no CGO. They depend only on domain types,
// port interfaces, the detector and the logger.
package services
