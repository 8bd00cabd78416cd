package config

import (
	"sync"
	"time"

	"github.com/spf13/pflag"
)

// FlagTracker records which command-line flags the user set explicitly, so
// that only those override values from .codesim.toml and the environment.
type FlagTracker struct {
	mu    sync.RWMutex
	flags map[string]bool
}

// NewFlagTracker creates a new thread-safe flag tracker
func NewFlagTracker() *FlagTracker {
	return &FlagTracker{
		flags: make(map[string]bool),
	}
}

// NewFlagTrackerFromFlagSet marks every flag the user changed in fs
func NewFlagTrackerFromFlagSet(fs *pflag.FlagSet) *FlagTracker {
	ft := NewFlagTracker()
	if fs == nil {
		return ft
	}
	fs.Visit(func(f *pflag.Flag) {
		ft.Set(f.Name)
	})
	return ft
}

// Set marks a flag as explicitly set
func (ft *FlagTracker) Set(flagName string) {
	ft.mu.Lock()
	defer ft.mu.Unlock()
	ft.flags[flagName] = true
}

// WasSet checks if a flag was explicitly set
func (ft *FlagTracker) WasSet(flagName string) bool {
	if ft == nil {
		return false
	}
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return ft.flags[flagName]
}

// Names returns a copy of the explicitly set flag names
func (ft *FlagTracker) Names() []string {
	ft.mu.RLock()
	defer ft.mu.RUnlock()

	names := make([]string, 0, len(ft.flags))
	for k := range ft.flags {
		names = append(names, k)
	}
	return names
}

// Count returns the number of explicitly set flags
func (ft *FlagTracker) Count() int {
	ft.mu.RLock()
	defer ft.mu.RUnlock()
	return len(ft.flags)
}

// MergeString returns override when flagName was set
func (ft *FlagTracker) MergeString(base, override, flagName string) string {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeInt returns override when flagName was set
func (ft *FlagTracker) MergeInt(base, override int, flagName string) int {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeInt64 returns override when flagName was set
func (ft *FlagTracker) MergeInt64(base, override int64, flagName string) int64 {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeBool returns override when flagName was set
func (ft *FlagTracker) MergeBool(base, override bool, flagName string) bool {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeFloat64 returns override when flagName was set
func (ft *FlagTracker) MergeFloat64(base, override float64, flagName string) float64 {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeDuration returns override when flagName was set
func (ft *FlagTracker) MergeDuration(base, override time.Duration, flagName string) time.Duration {
	if ft.WasSet(flagName) {
		return override
	}
	return base
}

// MergeStringSlice returns override when flagName was set to a non-empty list
func (ft *FlagTracker) MergeStringSlice(base, override []string, flagName string) []string {
	if ft.WasSet(flagName) && len(override) > 0 {
		return override
	}
	return base
}
