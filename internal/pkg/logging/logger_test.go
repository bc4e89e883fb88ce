package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DevWritesText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, true)

	log.With("req_id", "123").Warn(context.Background(), "token rejected", "path", "/admin/loans")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, `msg="token rejected"`)
	assert.Contains(t, out, "req_id=123")
	assert.Contains(t, out, "path=/admin/loans")
}

func TestNew_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, false)

	log.Info(context.Background(), "loan approved", "loan_id", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "loan approved", entry["msg"])
	assert.Equal(t, float64(7), entry["loan_id"])
}
