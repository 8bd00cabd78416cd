package config

import (
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func TestFlagTracker_Basic(t *testing.T) {
	ft := NewFlagTracker()

	if ft.WasSet("threshold") {
		t.Error("Expected flag 'threshold' to not be set initially")
	}

	ft.Set("threshold")
	if !ft.WasSet("threshold") {
		t.Error("Expected flag 'threshold' to be set after Set()")
	}
	if ft.Count() != 1 {
		t.Errorf("Expected count to be 1, got %d", ft.Count())
	}
}

func TestFlagTracker_NilTracker(t *testing.T) {
	var ft *FlagTracker
	if ft.WasSet("threshold") {
		t.Error("nil tracker should report nothing as set")
	}
	if got := ft.MergeString("base", "override", "threshold"); got != "base" {
		t.Errorf("nil tracker merge: expected 'base', got %q", got)
	}
}

func TestFlagTracker_FromFlagSet(t *testing.T) {
	fs := pflag.NewFlagSet("compare", pflag.ContinueOnError)
	fs.Float64P(FlagThreshold, "t", 0.8, "")
	fs.StringP(FlagLanguage, "l", "", "")
	fs.Bool(FlagRecursive, true, "")

	if err := fs.Parse([]string{"-t", "0.9", "--recursive=false"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	ft := NewFlagTrackerFromFlagSet(fs)
	names := ft.Names()
	sort.Strings(names)
	if len(names) != 2 || names[0] != FlagRecursive || names[1] != FlagThreshold {
		t.Errorf("Expected [recursive threshold], got %v", names)
	}
	if ft.WasSet(FlagLanguage) {
		t.Error("language was never passed")
	}

	if NewFlagTrackerFromFlagSet(nil).Count() != 0 {
		t.Error("nil flag set should give an empty tracker")
	}
}

func TestFlagTracker_ConcurrentReadWrite(t *testing.T) {
	ft := NewFlagTracker()
	var wg sync.WaitGroup
	iterations := 1000
	goroutines := 10

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				if j%2 == 0 {
					ft.Set("even")
				} else {
					ft.Set("odd")
				}
			}
		}()
	}

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				_ = ft.WasSet("even")
				_ = ft.WasSet("odd")
				_ = ft.Count()
				_ = ft.Names()
			}
		}()
	}

	wg.Wait()
	if ft.Count() != 2 {
		t.Errorf("Expected 2 flags after concurrent writes, got %d", ft.Count())
	}
}

func TestFlagTracker_MergeMethods(t *testing.T) {
	ft := NewFlagTracker()
	ft.Set("explicit")

	if got := ft.MergeString("base", "override", "explicit"); got != "override" {
		t.Errorf("MergeString with explicit flag: expected 'override', got '%s'", got)
	}
	if got := ft.MergeString("base", "override", "notset"); got != "base" {
		t.Errorf("MergeString without explicit flag: expected 'base', got '%s'", got)
	}

	if got := ft.MergeInt(10, 20, "explicit"); got != 20 {
		t.Errorf("MergeInt with explicit flag: expected 20, got %d", got)
	}
	if got := ft.MergeInt64(10, 20, "notset"); got != 10 {
		t.Errorf("MergeInt64 without explicit flag: expected 10, got %d", got)
	}

	if got := ft.MergeBool(true, false, "explicit"); got {
		t.Error("MergeBool with explicit flag: expected false, got true")
	}

	if got := ft.MergeFloat64(1.5, 2.5, "explicit"); got != 2.5 {
		t.Errorf("MergeFloat64 with explicit flag: expected 2.5, got %f", got)
	}

	if got := ft.MergeDuration(time.Second, time.Minute, "explicit"); got != time.Minute {
		t.Errorf("MergeDuration with explicit flag: expected 1m, got %v", got)
	}

	if got := ft.MergeStringSlice([]string{"a"}, []string{"b"}, "explicit"); len(got) != 1 || got[0] != "b" {
		t.Errorf("MergeStringSlice with explicit flag: expected ['b'], got %v", got)
	}
	if got := ft.MergeStringSlice([]string{"a"}, nil, "explicit"); len(got) != 1 || got[0] != "a" {
		t.Errorf("MergeStringSlice with empty override: expected ['a'], got %v", got)
	}
}

func TestApplyOverrides(t *testing.T) {
	base := DefaultConfig()

	t.Run("OnlySetFlagsApply", func(t *testing.T) {
		ft := NewFlagTracker()
		ft.Set(FlagThreshold)
		ft.Set(FlagTimeout)

		cfg, err := ApplyOverrides(base, Overrides{
			Threshold: 0.95,
			Timeout:   30 * time.Second,
			Format:    "json",
		}, ft)
		if err != nil {
			t.Fatalf("ApplyOverrides: %v", err)
		}
		if cfg.Compare.Threshold != 0.95 {
			t.Errorf("Expected threshold 0.95, got %v", cfg.Compare.Threshold)
		}
		if cfg.Batch.TimeoutSeconds != 30 {
			t.Errorf("Expected timeout 30s, got %d", cfg.Batch.TimeoutSeconds)
		}
		if cfg.Output.Format != "text" {
			t.Errorf("Format flag was not set, expected 'text', got %q", cfg.Output.Format)
		}
		if base.Compare.Threshold != 0.8 {
			t.Error("ApplyOverrides must not modify its input")
		}
	})

	t.Run("InvalidOverride", func(t *testing.T) {
		ft := NewFlagTracker()
		ft.Set(FlagThreshold)
		if _, err := ApplyOverrides(base, Overrides{Threshold: 1.5}, ft); err == nil {
			t.Error("Expected an error for threshold 1.5")
		}
	})
}
