//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	URL        string
	Token      string
	TurklePath string
	Verbose    bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		URL:        os.Getenv("TURKLE_URL"),
		Token:      os.Getenv("TURKLE_TOKEN"),
		TurklePath: getTurklePath(),
		Verbose:    os.Getenv("TURKLE_VERBOSE") == "true",
	}
}

// getTurklePath determines the path to the turkle binary
func getTurklePath() string {
	if path := os.Getenv("TURKLE_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../turkle",
		"./turkle",
		"../turkle",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "turkle"
}

// SkipIfMissingConfig skips the test unless a site and token are configured.
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.URL == "" || config.Token == "" {
		t.Skip("TURKLE_URL or TURKLE_TOKEN not set, skipping integration test")
	}
}

// SkipIfMissingBinary skips CLI tests when the turkle binary is not built.
func (config *TestConfig) SkipIfMissingBinary(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath(config.TurklePath); err != nil {
		t.Skipf("turkle binary not found at %s, skipping CLI test", config.TurklePath)
	}
}

// CommandRunner runs the turkle binary against the configured site.
type CommandRunner struct {
	config *TestConfig
	t      *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	return &CommandRunner{
		config: config,
		t:      t,
	}
}

// Run executes a turkle command with --url and --token prepended.
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	full := append([]string{"--url", runner.config.URL, "--token", runner.config.Token}, args...)

	cmd := exec.Command(runner.config.TurklePath, full...) //nolint:gosec

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.TurklePath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// ParseJSONLines decodes every line of jsonl output into a map.
func ParseJSONLines(t *testing.T, output string) []map[string]any {
	t.Helper()

	var records []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if line == "" {
			continue
		}

		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("Output line is not a JSON object: %q: %v", line, err)
		}

		records = append(records, record)
	}

	return records
}

// AssertYAMLOutput verifies command output looks like YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
