package domain

import "time"

// ============================================================================
// Comparison Defaults
// ============================================================================

const (
	// DefaultMaxInputBytes caps the size of one source unit (1 MiB).
	// 0 disables the cap.
	DefaultMaxInputBytes = 1 << 20

	// DefaultMaxArchiveEntries caps how many source members are read from a zip input.
	DefaultMaxArchiveEntries = 1000
)

// ============================================================================
// Batch Defaults
// ============================================================================

const (
	// DefaultBatchConcurrency is the number of comparisons run at once.
	DefaultBatchConcurrency = 4

	// DefaultBatchTimeout bounds a whole batch run.
	DefaultBatchTimeout = 5 * time.Minute

	// DefaultBatchMinCombined hides pairs below this combined score. 0 keeps all pairs.
	DefaultBatchMinCombined = 0.0
)

// ============================================================================
// Server Defaults
// ============================================================================

const (
	// DefaultServerAddress is the listen address for `codesim serve`.
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadMB caps multipart request bodies.
	DefaultMaxUploadMB = 16
)

// ============================================================================
// Logging Defaults
// ============================================================================

const (
	DefaultLogFilename   = ".codesim.log"
	DefaultLogLevel      = "info"
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)
