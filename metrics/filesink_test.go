package metrics

import (
	"os"
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink_WritesReportOnClose(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "sink-*.txt")
	require.NoError(t, err)
	path := f.Name()
	f.Close()

	mock := clock.NewMock()
	sink, err := NewFileSink(path, mock)
	require.NoError(t, err)

	sink.AddMessage("build", "test")
	sink.Hits("block", 8)
	sink.Misses("block", 2)
	sink.GhostHits("block", 1)
	sink.Evictions("block", 3)
	sink.Size("block", 1000, 500, 2000)

	mock.Add(0)
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "build = test")
	assert.Contains(t, out, "--------------block--------------")
	assert.Contains(t, out, "real = 1000")
	assert.Contains(t, out, "capacity = 2000")
}

func TestFileSink_OpenErrorOnMissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewFileSink("/nonexistent-dir/sink.txt", nil)
	assert.Error(t, err)
}
