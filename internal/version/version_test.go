package version

import (
	"strings"
	"testing"
)

func TestFull_ContainsAllParts(t *testing.T) {
	full := Full()
	for _, part := range []string{Version, Commit, Date} {
		if !strings.Contains(full, part) {
			t.Errorf("Full() = %q, missing %q", full, part)
		}
	}
}

func TestShort_IsVersionOnly(t *testing.T) {
	if got := Short(); got != Version {
		t.Errorf("Short() = %q, want %q", got, Version)
	}
}
