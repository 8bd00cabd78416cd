package e2e

import (
	"encoding/json"
	"os/exec"
	"strings"
	"testing"
)

const (
	goAdd = `package calc

func Add(a, b int) int {
	sum := a + b
	return sum
}
`
	goAddRenamed = `package calc

func Plus(x, y int) int {
	total := x + y
	return total
}
`
)

func TestCompareE2EText(t *testing.T) {
	binaryPath := buildCodesimBinary(t)
	testDir := t.TempDir()
	createTestFile(t, testDir, "add.go", goAdd)
	createTestFile(t, testDir, "plus.go", goAddRenamed)

	stdout, stderr, err := runBinary(t, binaryPath, testDir, "compare", "add.go", "plus.go")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}

	for _, want := range []string{"Code Similarity Report", "Similarity Metrics", "Clone Types"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Output should contain %q", want)
		}
	}
}

func TestCompareE2EJSON(t *testing.T) {
	binaryPath := buildCodesimBinary(t)
	testDir := t.TempDir()
	createTestFile(t, testDir, "add.go", goAdd)
	createTestFile(t, testDir, "plus.go", goAddRenamed)

	stdout, stderr, err := runBinary(t, binaryPath, testDir, "compare", "--json", "add.go", "plus.go")
	if err != nil {
		t.Fatalf("Command failed: %v\nstderr: %s", err, stderr)
	}

	var resp struct {
		Result struct {
			Language string `json:"language"`
			Verdicts []struct {
				Type     string `json:"type"`
				Detected bool   `json:"detected"`
			} `json:"verdicts"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(stdout), &resp); err != nil {
		t.Fatalf("Output is not valid JSON: %v\n%s", err, stdout)
	}
	if resp.Result.Language != "go" {
		t.Errorf("Expected language go, got %q", resp.Result.Language)
	}
	if len(resp.Result.Verdicts) != 11 {
		t.Errorf("Expected 11 clone verdicts, got %d", len(resp.Result.Verdicts))
	}
	for _, v := range resp.Result.Verdicts {
		if v.Type == "exact" && v.Detected {
			t.Error("Renamed functions must not be exact clones")
		}
	}
}

func TestCompareE2EUnsupportedLanguage(t *testing.T) {
	binaryPath := buildCodesimBinary(t)
	testDir := t.TempDir()

	_, stderr, err := runBinary(t, binaryPath, testDir,
		"compare", "--language", "cobol", "--code1", "a", "--code2", "b")
	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 1 {
		t.Fatalf("Expected exit code 1, got %v", err)
	}
	if !strings.Contains(stderr, "UNSUPPORTED_LANGUAGE") {
		t.Errorf("Expected an unsupported language error, got: %s", stderr)
	}
}
