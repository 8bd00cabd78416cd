package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildCodesimBinary builds the CLI into a temporary directory
func buildCodesimBinary(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping e2e test in short mode")
	}

	binaryPath := filepath.Join(t.TempDir(), "codesim")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/codesim")

	// build from the project root, one level up
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build codesim binary: %v\n%s", err, out)
	}
	return binaryPath
}

// runBinary runs the binary in dir and returns stdout, stderr and the error.
// Logs go to a file in a separate temporary directory.
func runBinary(t *testing.T, binaryPath, dir string, args ...string) (string, string, error) {
	t.Helper()
	logFile := filepath.Join(t.TempDir(), "codesim.log")
	args = append([]string{"--log-file", logFile}, args...)

	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "CI=true", "NO_COLOR=1")

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", filename, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}
	return path
}

// createTestConfigFile creates a .codesim.toml in testDir that directs
// generated reports to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configContent := fmt.Sprintf("[output]\ndirectory = %q\n", outputDir)
	createTestFile(t, testDir, ".codesim.toml", configContent)
}
