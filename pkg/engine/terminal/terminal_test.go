package terminal

import (
	"bytes"
	"testing"
)

func TestNonTerminalWriter(t *testing.T) {
	var buf bytes.Buffer

	width, height := GetSize(&buf)
	if width != DefaultWidth || height != DefaultHeight {
		t.Errorf("GetSize() = %d, %d, want defaults", width, height)
	}
	if got := GetWidth(&buf); got != DefaultWidth {
		t.Errorf("GetWidth() = %d, want %d", got, DefaultWidth)
	}
	if IsTerminal(&buf) {
		t.Error("a buffer is not a terminal")
	}
}
