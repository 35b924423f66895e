package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// StubAgent writes an executable shell script into a temp directory and
// returns its path. Tests use it as a stand-in for the real agent binary.
func StubAgent(t testing.TB, script string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "claude")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0o755); err != nil {
		t.Fatalf("write stub agent: %v", err)
	}
	return path
}

// ResultLine builds a single agent result envelope line carrying the given
// structured output JSON.
func ResultLine(structured string) string {
	return `{"type":"result","subtype":"success","result":{"structured_output":` + structured + `}}`
}
