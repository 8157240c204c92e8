package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "moqlint-e2e")
	if err != nil {
		panic(err)
	}

	binaryPath = filepath.Join(dir, "moqlint")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/moqlint")
	if out, err := cmd.CombinedOutput(); err != nil {
		os.RemoveAll(dir)
		panic("build failed: " + string(out))
	}

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func fixturePath(parts ...string) string {
	abs, _ := filepath.Abs(filepath.Join(append([]string{"../../testdata/moqui"}, parts...)...))
	return abs
}

// run returns stdout, stderr and the exit code.
func run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// --- Single file ---

func TestE2E_EntityClean(t *testing.T) {
	out, _, code := run(t, "entity", fixturePath("entity", "OrderEntities.xml"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "No issues found")
}

func TestE2E_EntityIssuesExitOne(t *testing.T) {
	out, stderr, code := run(t, "entity", fixturePath("entity", "LegacyEntities.xml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Issues (5)")
	assert.NotContains(t, stderr, "lint failed", "verdict is not printed as an error")
}

func TestE2E_SuggestionsOnlyExitZero(t *testing.T) {
	dir := t.TempDir()
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<services>
    <service verb="get" noun="order">
        <actions><return/></actions>
    </service>
</services>
`
	file := filepath.Join(dir, "Services.xml")
	require.NoError(t, os.WriteFile(file, []byte(doc), 0644))

	out, _, code := run(t, "service", file)
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "Suggestions")
	assert.NotContains(t, out, "Issues (")
}

func TestE2E_ParseErrorExitOne(t *testing.T) {
	out, _, code := run(t, "entity", fixturePath("other", "Broken.xml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "XML parse error")
}

func TestE2E_FileNotFound(t *testing.T) {
	_, stderr, code := run(t, "service", fixturePath("service", "Nope.xml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "file not found")
}

// --- Batches ---

func TestE2E_LintJSON(t *testing.T) {
	out, _, code := run(t, "lint", "--path", fixturePath(), "--json")
	assert.Equal(t, 1, code)

	var report domain.BatchReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 5, report.Totals.Files)
	assert.Equal(t, 1, report.Totals.ParseErrors)
	assert.False(t, report.Passed)
}

func TestE2E_LintCleanBatch(t *testing.T) {
	out, _, code := run(t, "lint", "--path", fixturePath(),
		fixturePath("entity", "OrderEntities.xml"), fixturePath("service", "OrderServices.xml"))
	assert.Equal(t, 0, code, out)
	assert.Contains(t, out, "PASSED")
}

func TestE2E_EmptyDirectoryFails(t *testing.T) {
	_, stderr, code := run(t, "lint", "--path", t.TempDir())
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no definition files found")
}

// --- Other commands ---

func TestE2E_Rules(t *testing.T) {
	out, _, code := run(t, "rules")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, domain.RuleVerbLowercase)
	assert.Contains(t, out, domain.RulePrimaryKeyName)
}

func TestE2E_InitThenLint(t *testing.T) {
	dir := t.TempDir()
	_, _, code := run(t, "init", dir, "--dialect", "entity")
	require.Equal(t, 0, code)

	data, err := os.ReadFile(fixturePath("service", "OrderServices.xml"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "OrderServices.xml"), data, 0644))

	// the configured entity dialect filters out the service file
	_, stderr, code := run(t, "lint", "--path", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "no definition files found")
}

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "moqlint")
}
