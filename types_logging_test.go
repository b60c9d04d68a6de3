package catalog

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefLoggerRendersKeyValuePairs(t *testing.T) {
	var buf bytes.Buffer
	logger := defLogger{w: &buf}

	logger.Error("failed to decrypt product price", "product_id", "abc-123", "error", "bad ciphertext")

	out := buf.String()
	assert.Equal(t, "[ERR] CATALOG failed to decrypt product price product_id=abc-123 error=bad ciphertext\n", out)
	assert.NotContains(t, out, "%!")
}

func TestDefLoggerLevelsAndBareMessages(t *testing.T) {
	var buf bytes.Buffer
	logger := defLogger{w: &buf}

	logger.Info("shutting down")
	logger.Debug("optional auth failed", "error", "no token")

	out := buf.String()
	assert.Contains(t, out, "[INF] CATALOG shutting down\n")
	assert.Contains(t, out, "[DBG] CATALOG optional auth failed error=no token\n")
}

func TestKvlineOddArgument(t *testing.T) {
	assert.Equal(t, "msg key=1 dangling", kvline("msg", []any{"key", 1, "dangling"}))
	assert.Equal(t, "msg", kvline("msg", nil))
}
