package commands_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build the binary once for all tests.
	tmpDir, err := os.MkdirTemp("", "sors-test-*")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(tmpDir)

	binaryPath = filepath.Join(tmpDir, "sors")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/sors")
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		panic("failed to build binary: " + err.Error())
	}

	os.Exit(m.Run())
}

func runSors(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// initWorkspace creates a fresh workspace in a temp dir.
func initWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	out, err := runSors(t, "init", dir, "--name", "Test Budget")
	require.NoError(t, err, "init failed: %s", out)
	return dir
}

// writeStatement drops a statement file into the workspace import directory.
func writeStatement(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, "import", name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// writeCategories replaces the workspace category set.
func writeCategories(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "categories.yaml"), []byte(content), 0o644))
}

const cibcStatement = "01/15/2024,TIM HORTONS #123,4.50,\n" +
	"01/16/2024,LOBLAWS #1234 TORONTO,87.22,\n" +
	"01/17/2024,PAYROLL DEPOSIT ACME,,2450.00\n"

// baseCategories uses fixed IDs so tests can assert on ledger contents.
// Shopping and Subscriptions deliberately overlap on AMAZON.CA rows.
const baseCategories = `categories:
  - id: uncat
    name: Uncategorized
    system: true
    order: 0
  - id: excl
    name: Excluded
    system: true
    order: 1
  - id: income
    name: Income
    keywords: ["PAYROLL"]
    system: true
    matchable: true
    order: 2
  - id: coffee
    name: Coffee
    keywords: ["TIM HORTONS"]
    order: 10
  - id: shopping
    name: Shopping
    keywords: ["AMAZON"]
    order: 20
  - id: subscriptions
    name: Subscriptions
    keywords: ["AMAZON.CA"]
    order: 30
`

const updatedCategories = baseCategories + `  - id: groceries
    name: Groceries
    keywords: ["MYSTERY"]
    order: 40
`
