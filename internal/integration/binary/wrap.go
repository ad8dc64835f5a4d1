package binary

import (
	"fmt"
	"os/exec"

	"github.com/farcloser/primordium/fault"
)

// Require resolves binName in PATH, failing with fault.ErrMissingRequirements when absent.
func Require(binName string) (string, error) {
	path, err := exec.LookPath(binName)
	if err != nil {
		return "", fmt.Errorf("%w: %s", fault.ErrMissingRequirements, binName)
	}

	return path, nil
}

// Available reports whether every named binary can be found.
func Available(binNames ...string) bool {
	for _, binName := range binNames {
		if _, err := exec.LookPath(binName); err != nil {
			return false
		}
	}

	return true
}
