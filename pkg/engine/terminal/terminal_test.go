package terminal

import (
	"bytes"
	"os"
	"testing"
)

func TestSizeOf_NonTerminalGetsDefaults(t *testing.T) {
	var buf bytes.Buffer
	w, h := SizeOf(&buf)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("SizeOf(buffer) = %dx%d, want %dx%d", w, h, DefaultWidth, DefaultHeight)
	}
	if IsTerminal(&buf) {
		t.Error("a buffer is not a terminal")
	}
}

func TestSizeOf_FileGetsDefaults(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "preview")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	w, h := SizeOf(f)
	if w != DefaultWidth || h != DefaultHeight {
		t.Errorf("SizeOf(file) = %dx%d, want defaults", w, h)
	}
}
