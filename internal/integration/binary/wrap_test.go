package binary_test

import (
	"errors"
	"testing"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/soundcheck/internal/integration/binary"
)

func TestRequireMissing(t *testing.T) {
	t.Parallel()

	_, err := binary.Require("soundcheck-definitely-not-installed")
	if !errors.Is(err, fault.ErrMissingRequirements) {
		t.Errorf("got %v, want ErrMissingRequirements", err)
	}

	if binary.Available("sh", "soundcheck-definitely-not-installed") {
		t.Error("one missing binary should make the set unavailable")
	}
}
