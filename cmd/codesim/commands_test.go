package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/codesim/domain"
	"github.com/ludo-technologies/codesim/internal/config"
)

const (
	pySum = `def total(values):
    result = 0
    for v in values:
        result += v
    return result
`
	pySumRenamed = `def accumulate(items):
    acc = 0
    for item in items:
        acc += item
    return acc
`
	pyOther = `class Greeter:
    def greet(self, name):
        print("hello " + name)
`
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCompareCommandInterface(t *testing.T) {
	cobraCmd := NewCompareCommand().CreateCobraCommand()

	if cobraCmd.Use != "compare <file1> <file2>" {
		t.Errorf("Expected command use 'compare <file1> <file2>', got '%s'", cobraCmd.Use)
	}
	if cobraCmd.Short == "" {
		t.Error("Command should have a short description")
	}

	expectedFlags := []string{"config", "language", "threshold", "code1", "code2", "format", "html", "json", "csv", "yaml", "dot", "output", "no-open", "stats"}
	for _, flagName := range expectedFlags {
		if cobraCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}

func TestCompareFilesJSON(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", pySum)
	b := writeFile(t, dir, "b.py", pySum)

	out, _, err := runCLI(t, "compare", "--json", a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}

	var resp domain.CompareResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if resp.Result == nil {
		t.Fatal("Expected a result")
	}
	if resp.Result.Language != domain.LanguagePython {
		t.Errorf("Expected python, got %s", resp.Result.Language)
	}
	if exact, _ := resp.Result.Verdict(domain.CloneExact); !exact {
		t.Error("Identical files should be exact clones")
	}
	if combined, _ := resp.Result.Score(domain.MetricCombined); combined < 0.999 {
		t.Errorf("Expected combined 1.0 for identical files, got %v", combined)
	}
}

func TestCompareInlineText(t *testing.T) {
	out, _, err := runCLI(t, "compare", "-l", "python", "--code1", pySum, "--code2", pySumRenamed)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !strings.Contains(out, "code1") || !strings.Contains(out, "code2") {
		t.Errorf("Expected both unit names in the text report:\n%s", out)
	}
}

func TestCompareThresholdFlag(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", pySum)
	b := writeFile(t, dir, "b.py", pySumRenamed)

	out, _, err := runCLI(t, "compare", "--json", "-t", "0.35", a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	var resp domain.CompareResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Result.Threshold != 0.35 {
		t.Errorf("Expected threshold 0.35, got %v", resp.Result.Threshold)
	}
}

func TestCompareArgumentErrors(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", pySum)

	tests := []struct {
		name string
		args []string
	}{
		{"one file", []string{"compare", a}},
		{"only code1", []string{"compare", "-l", "c", "--code1", "int x;"}},
		{"files and code", []string{"compare", "--code1", "a", "--code2", "b", a}},
		{"inline without language", []string{"compare", "--code1", "a", "--code2", "b"}},
		{"unsupported language", []string{"compare", "-l", "cobol", "--code1", "a", "--code2", "b"}},
		{"two format flags", []string{"compare", "--json", "--csv", a, a}},
		{"threshold out of range", []string{"compare", "-t", "2", a, a}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runCLI(t, tt.args...); err == nil {
				t.Errorf("Expected an error for %v", tt.args)
			}
		})
	}
}

func TestCompareOutputFile(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", pySum)
	b := writeFile(t, dir, "b.py", pyOther)
	report := filepath.Join(dir, "out", "report.html")

	_, stderr, err := runCLI(t, "compare", "--html", "--no-open", "-o", report, a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	data, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("Report was not written: %v", err)
	}
	if !strings.Contains(string(data), "<!DOCTYPE html>") {
		t.Error("Expected an HTML document")
	}
	if !strings.Contains(stderr, "HTML report generated") {
		t.Errorf("Expected a status line on stderr, got %q", stderr)
	}
}

func TestCompareDOT(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.py", pySum)
	b := writeFile(t, dir, "b.py", pyOther)

	out, _, err := runCLI(t, "compare", "--dot", a, b)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if strings.Count(out, "digraph") != 2 {
		t.Errorf("Expected two graphs, got:\n%s", out)
	}
}

func TestBatchJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sum.py", pySum)
	writeFile(t, dir, "pkg/sum_renamed.py", pySumRenamed)
	writeFile(t, dir, "pkg/greeter.py", pyOther)
	writeFile(t, dir, "notes.txt", "not source")

	out, _, err := runCLI(t, "batch", "--json", "--no-progress", dir)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}

	var resp domain.BatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("Output is not JSON: %v\n%s", err, out)
	}
	if resp.Statistics == nil || resp.Statistics.FilesAnalyzed != 3 {
		t.Fatalf("Expected 3 analyzed files, got %+v", resp.Statistics)
	}
	if len(resp.Pairs) != 3 {
		t.Fatalf("Expected 3 pairs, got %d", len(resp.Pairs))
	}
	top := resp.Pairs[0]
	if filepath.Base(top.FirstPath) == "greeter.py" || filepath.Base(top.SecondPath) == "greeter.py" {
		t.Errorf("Expected the two sum functions to rank first, got %s / %s", top.FirstPath, top.SecondPath)
	}
}

func TestBatchFilters(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sum.py", pySum)
	writeFile(t, dir, "sum_copy.py", pySum)
	writeFile(t, dir, "greeter.py", pyOther)

	out, _, err := runCLI(t, "batch", "--json", "--no-progress", "--only-clones", "--exclude", "greeter.py", dir)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	var resp domain.BatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Statistics.FilesAnalyzed != 2 || len(resp.Pairs) != 1 {
		t.Errorf("Expected one clone pair from two files, got %d files and %d pairs",
			resp.Statistics.FilesAnalyzed, len(resp.Pairs))
	}
}

func TestBatchPrefilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sum.py", pySum)
	writeFile(t, dir, "sum_copy.py", pySum)
	writeFile(t, dir, "greeter.py", pyOther)

	out, _, err := runCLI(t, "batch", "--json", "--no-progress", "--prefilter", dir)
	if err != nil {
		t.Fatalf("batch failed: %v", err)
	}
	var resp domain.BatchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if got := resp.Statistics.PairsCompared + resp.Statistics.PairsPruned; got != 3 {
		t.Errorf("Expected compared+pruned to cover 3 pairs, got %d", got)
	}
	if len(resp.Pairs) == 0 || filepath.Base(resp.Pairs[0].FirstPath) != "sum.py" ||
		filepath.Base(resp.Pairs[0].SecondPath) != "sum_copy.py" {
		t.Errorf("Expected the identical files to be compared, got %+v", resp.Pairs)
	}
}

func TestBatchRejectsDOT(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", pySum)
	writeFile(t, dir, "b.py", pySum)

	if _, _, err := runCLI(t, "batch", "--format", "dot", "--no-progress", dir); err == nil {
		t.Error("DOT output should be rejected for batch runs")
	}
}

func TestLanguagesCommand(t *testing.T) {
	out, _, err := runCLI(t, "languages")
	if err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	for _, lang := range []string{"python", "go", "rust", ".py"} {
		if !strings.Contains(out, lang) {
			t.Errorf("Expected %q in languages table", lang)
		}
	}

	out, _, err = runCLI(t, "languages", "--json")
	if err != nil {
		t.Fatalf("languages --json failed: %v", err)
	}
	var entries []languageEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(domain.AllLanguages()) {
		t.Errorf("Expected %d languages, got %d", len(domain.AllLanguages()), len(entries))
	}
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", config.ConfigFileName)

	out, _, err := runCLI(t, "init", "--config", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, "Configuration file created") {
		t.Errorf("Unexpected output: %q", out)
	}

	if _, _, err := config.Load(path, ""); err != nil {
		t.Errorf("Generated config does not load: %v", err)
	}

	if _, _, err := runCLI(t, "init", "--config", path); err == nil {
		t.Error("Expected an error when the file already exists")
	}
	if _, _, err := runCLI(t, "init", "--config", path, "--force"); err != nil {
		t.Errorf("--force should overwrite: %v", err)
	}
}

func TestServeCommandInterface(t *testing.T) {
	cobraCmd := NewServeCommand().CreateCobraCommand()
	for _, flagName := range []string{"config", "addr", "threshold", "max-input-bytes", "env-file"} {
		if cobraCmd.Flags().Lookup(flagName) == nil {
			t.Errorf("Expected flag '%s' to be defined", flagName)
		}
	}
}
