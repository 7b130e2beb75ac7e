// Package domain defines the core business entities for CyberX.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - RawDocument: A scraped article before extraction
//   - ThreatRecord: The canonical structured threat actor profile
//   - ThreatIntel: A ThreatRecord or the unparsed model output it replaced
//   - Document: A ThreatIntel with its provenance
//   - RunLog: The accumulated record of one pipeline run
//   - QATable: The static question-answer table
//   - Capability: Whether an external credential is configured
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
