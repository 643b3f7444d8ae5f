package gen_test

import (
	"os/exec"
	"path/filepath"
	"testing"
)

// runExampleIntegrationTest regenerates the example package through the CLI
// and runs its tests against the fresh output.
func runExampleIntegrationTest(t *testing.T, exampleName string) {
	t.Helper()

	if testing.Short() {
		t.Skip("integration test runs the go toolchain")
	}

	repoRoot, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	cmd := exec.CommandContext(t.Context(), "go", "run", "./cmd/confstruct", "scan", "./examples/"+exampleName)
	cmd.Dir = repoRoot

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("scan failed: %v\n%s", err, string(b))
	}

	check := exec.CommandContext(t.Context(), "go", "run", "./cmd/confstruct", "check", "./examples/"+exampleName)
	check.Dir = repoRoot

	b, err = check.CombinedOutput()
	if err != nil {
		t.Fatalf("check after scan failed: %v\n%s", err, string(b))
	}

	test := exec.CommandContext(t.Context(), "go", "test", "./examples/"+exampleName, "-count=1")
	test.Dir = repoRoot

	b, err = test.CombinedOutput()
	if err != nil {
		t.Fatalf("example tests failed: %v\n%s", err, string(b))
	}
}
