package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("should build a logger for known levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			logger, err := New(level, false)

			assert.NoError(t, err)
			assert.NotNil(t, logger)
		}
	})

	t.Run("should reject unknown levels", func(t *testing.T) {
		_, err := New("loud", true)

		assert.ErrorContains(t, err, "invalid log level 'loud'")
	})
}
