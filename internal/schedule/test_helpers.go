package schedule

import (
	"os"
	"path/filepath"
	"testing"
)

// GetFixturePath returns the absolute path to a fixture file in the "testdata" directory relative to the project's root.
func GetFixturePath(t *testing.T, fixturePath string) string {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("..", "..", "testdata", fixturePath))
	if err != nil {
		t.Fatalf("Failed to get absolute path to testdata/%s: %v", fixturePath, err)
	}

	return absPath
}

// LoadFixture parses a schedule document from the "testdata" directory.
func LoadFixture(t *testing.T, fixturePath string) *Document {
	t.Helper()

	body, err := os.ReadFile(GetFixturePath(t, fixturePath))
	if err != nil {
		t.Fatalf("Failed to read testdata/%s: %v", fixturePath, err)
	}

	doc, err := Parse(body)
	if err != nil {
		t.Fatalf("Failed to parse testdata/%s: %v", fixturePath, err)
	}

	return doc
}
