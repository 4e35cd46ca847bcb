package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestCheckMissingFileReturnsError(t *testing.T) {
	err := execute(t, "check", "no-such-file.ml")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !strings.Contains(err.Error(), "cannot read no-such-file.ml") {
		t.Fatalf("expected the error to name the file, got %q", err)
	}
}

func TestCheckReportsErrorCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.ml")
	if err := os.WriteFile(path, []byte("func main() { send 1; }\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := execute(t, "check", "--no-color", path)
	if err == nil {
		t.Fatal("expected an error for a file with semantic errors")
	}
	if !strings.Contains(err.Error(), "error(s) found") {
		t.Fatalf("expected an error count summary, got %q", err)
	}
}
