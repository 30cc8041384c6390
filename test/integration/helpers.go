//go:build integration
// +build integration

package integration

import (
	"bytes"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Token        string
	Folder       string
	BinaryPath   string
	Verbose      bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	folder := os.Getenv("CCM_TEST_FOLDER")
	if folder == "" {
		folder = "ccm-client-tests"
	}

	return &TestConfig{
		Endpoint:     os.Getenv("CCM_TEST_ENDPOINT"),
		ClientID:     os.Getenv("CCM_TEST_CLIENT_ID"),
		ClientSecret: os.Getenv("CCM_TEST_CLIENT_SECRET"),
		Token:        os.Getenv("CCM_TEST_TOKEN"),
		Folder:       folder,
		BinaryPath:   getBinaryPath(),
		Verbose:      os.Getenv("CCM_VERBOSE") == "true",
	}
}

// getBinaryPath determines the path to the ccm binary
func getBinaryPath() string {
	if path := os.Getenv("CCM_BINARY_PATH"); path != "" {
		return path
	}

	// Try common locations
	candidates := []string{
		"../../ccm",
		"./ccm",
		"../ccm",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "ccm" // Fallback to PATH
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	if config.Endpoint == "" {
		t.Skip("CCM_TEST_ENDPOINT not set, skipping integration test")
	}

	if config.Token == "" && (config.ClientID == "" || config.ClientSecret == "") {
		t.Skip("no CCM test credentials set, skipping integration test")
	}

	if _, err := os.Stat(config.BinaryPath); os.IsNotExist(err) {
		t.Skipf("ccm binary not found at %s, skipping integration test", config.BinaryPath)
	}
}

// CommandRunner provides utilities for running ccm commands
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

// Run executes a ccm command with the test credentials and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append(args, "--endpoint", runner.config.Endpoint)

	if runner.config.Token != "" {
		args = append(args, "--token", runner.config.Token)
	} else {
		args = append(args,
			"--client-id", runner.config.ClientID,
			"--client-secret", runner.config.ClientSecret)
	}

	cmd := exec.Command(runner.config.BinaryPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.BinaryPath, strings.Join(args, " "))
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
	return prefix + "-" + time.Now().UTC().Format("20060102-150405")
}

// CleanupResource attempts to delete a test resource, ignoring failures
func (runner *CommandRunner) CleanupResource(resourceType, name string) {
	stdout, stderr, err := runner.Run(resourceType, "delete", name,
		"--folder", runner.config.Folder, "--force")
	if err != nil && runner.config.Verbose {
		runner.t.Logf("Cleanup warning for %s %s: %s\nStderr: %s", resourceType, name, stdout, stderr)
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return // Looks like YAML
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
