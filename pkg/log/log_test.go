package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForContext(t *testing.T) {
	ctx, correlationID := WithCorrelationID(context.Background())
	ctx = WithRunID(ctx, "run123")

	entry := ForContext(ctx)

	assert.Equal(t, correlationID, entry.Data["correlation_id"])
	assert.Equal(t, "run123", entry.Data["run_id"])
	assert.Equal(t, "run123", GetRunID(ctx))
}

func TestForContext_SemCampos(t *testing.T) {
	entry := ForContext(context.Background())

	assert.Empty(t, entry.Data)
	assert.Empty(t, GetCorrelationID(context.Background()))
}
