package domain

import (
	"testing"
)

// TestDefaultValueConsistency ensures all default values are properly defined
// and maintain expected relationships
func TestDefaultValueConsistency(t *testing.T) {
	t.Run("Threshold is within valid range", func(t *testing.T) {
		if DefaultThreshold < 0.0 || DefaultThreshold > 1.0 {
			t.Errorf("DefaultThreshold (%.2f) should be in [0,1]", DefaultThreshold)
		}
		if DefaultBatchMinCombined < 0.0 || DefaultBatchMinCombined > 1.0 {
			t.Errorf("DefaultBatchMinCombined (%.2f) should be in [0,1]", DefaultBatchMinCombined)
		}
	})

	t.Run("Limits are positive", func(t *testing.T) {
		limits := []struct {
			name  string
			value int
		}{
			{"MaxInputBytes", DefaultMaxInputBytes},
			{"MaxArchiveEntries", DefaultMaxArchiveEntries},
			{"BatchConcurrency", DefaultBatchConcurrency},
			{"MaxUploadMB", DefaultMaxUploadMB},
			{"LogMaxSizeMB", DefaultLogMaxSizeMB},
		}
		for _, l := range limits {
			if l.value <= 0 {
				t.Errorf("%s should be > 0, got %d", l.name, l.value)
			}
		}
	})

	t.Run("Batch timeout is set", func(t *testing.T) {
		if DefaultBatchTimeout <= 0 {
			t.Errorf("DefaultBatchTimeout should be > 0, got %v", DefaultBatchTimeout)
		}
	})

	t.Run("Default requests validate", func(t *testing.T) {
		if err := DefaultCompareRequest().Validate(); err != nil {
			t.Errorf("DefaultCompareRequest should validate: %v", err)
		}
		if err := DefaultBatchRequest().Validate(); err != nil {
			t.Errorf("DefaultBatchRequest should validate: %v", err)
		}
	})
}
