package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrConfiguration, ErrPreflight, ErrCapture, ErrTransfer, ErrIntegrity, ErrHook}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v must not match %v", a, b)
		}
	}
}

func TestWrappedSentinelMatches(t *testing.T) {
	err := fmt.Errorf("uploading key: %w", ErrTransfer)
	assert.True(t, errors.Is(err, ErrTransfer))
	assert.False(t, errors.Is(err, ErrIntegrity))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(ErrHook))
	assert.Equal(t, 1, ExitCode(errors.New("anything")))
}
