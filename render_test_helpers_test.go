package mdh

import (
	"os"
	"testing"
)

func renderString(t *testing.T, src string, opts ...RenderOption) string {
	t.Helper()
	out, err := RenderString(src, opts...)
	if err != nil {
		t.Fatalf("render %q: %v", src, err)
	}
	return out
}

func readSample(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
