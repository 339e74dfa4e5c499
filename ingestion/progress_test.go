package ingestion

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 5, 2)
	p.Start()

	p.Increment(1)
	assert.Empty(t, buf.String())

	p.Increment(1)
	assert.Equal(t, "Progress: 2/5 (40%)\n", buf.String())

	p.Increment(10)
	p.Finish()
	assert.Equal(t, "Progress: 2/5 (40%)\nProgress: 5/5 (100%)\n", buf.String())
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 3, 1)

	p.Increment(1)
	p.Finish()
	assert.Empty(t, buf.String())
	assert.Zero(t, p.Elapsed())
}

func TestProgressTracker_EmptyBatch(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgressTracker(&buf, 0, 0)
	p.Start()
	p.Finish()
	assert.Equal(t, "Progress: 0/0 (100%)\n", buf.String())
}
