package cli

import (
	"bytes"
	"testing"
)

// TestShouldUseStylingNonTerminal verifies plain writers never get ANSI
// styling.
func TestShouldUseStylingNonTerminal(t *testing.T) {
	if shouldUseStyling(nil) {
		t.Fatal("nil writer should not be styled")
	}
	if shouldUseStyling(&bytes.Buffer{}) {
		t.Fatal("buffer writer should not be styled")
	}
}

// TestShouldUseStylingOptOuts verifies the conventional opt-out variables.
func TestShouldUseStylingOptOuts(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if shouldUseStyling(&bytes.Buffer{}) {
		t.Fatal("NO_COLOR should disable styling")
	}
}

// TestPaletteDisabledPassthrough verifies a disabled palette returns text
// unchanged.
func TestPaletteDisabledPassthrough(t *testing.T) {
	palette := paletteFor(&bytes.Buffer{}, true)
	if palette.enabled {
		t.Fatal("palette should be disabled")
	}
	if got := palette.label("Mode"); got != "Mode" {
		t.Fatalf("label altered: %q", got)
	}
	if got := palette.fail("FAIL"); got != "FAIL" {
		t.Fatalf("fail marker altered: %q", got)
	}
}
