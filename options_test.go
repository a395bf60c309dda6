package twiddle

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOptions_Defaults(t *testing.T) {
	o := ApplyOptions()

	assert.Equal(t, DefaultSeed, o.Seed)
	assert.Equal(t, runtime.GOMAXPROCS(0), o.Parallelism)
	assert.NotNil(t, o.Logger)
	assert.IsType(t, NoopMetricsCollector{}, o.Metrics)
}

func TestApplyOptions(t *testing.T) {
	m := &BasicMetricsCollector{}
	l := NewTextLogger(slog.LevelWarn)

	o := ApplyOptions(
		WithSeed(42),
		WithParallelism(3),
		WithMetrics(m),
		WithLogger(l),
	)

	assert.Equal(t, uint32(42), o.Seed)
	assert.Equal(t, 3, o.Parallelism)
	assert.Same(t, m, o.Metrics)
	assert.Same(t, l, o.Logger)
}

func TestApplyOptions_NilFallbacks(t *testing.T) {
	o := ApplyOptions(WithLogger(nil), WithMetrics(nil), WithParallelism(-1))

	assert.NotNil(t, o.Logger)
	assert.IsType(t, NoopMetricsCollector{}, o.Metrics)
	assert.Equal(t, runtime.GOMAXPROCS(0), o.Parallelism)
}

func TestObserveMerge(t *testing.T) {
	var buf bytes.Buffer
	m := &BasicMetricsCollector{}
	o := ApplyOptions(
		WithMetrics(m),
		WithLogger(NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))),
	)

	require.NoError(t, o.ObserveMerge(KindBitmap, "union", time.Now(), nil))
	assert.Zero(t, buf.Len(), "successful merges are not logged")

	err := CheckSize(8, 16)
	assert.Same(t, err, o.ObserveMerge(KindBloomFilter, "union", time.Now(), err))

	stats := m.GetStats()
	assert.Equal(t, int64(2), stats.MergeCount)
	assert.Equal(t, int64(1), stats.MergeErrors)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "operation rejected", entry["msg"])
	assert.Equal(t, "union", entry["op"])
	assert.Equal(t, "bloomfilter", entry["kind"])
	assert.True(t, strings.Contains(entry["error"].(string), "size mismatch"))
}

func TestObserveReject(t *testing.T) {
	m := &BasicMetricsCollector{}
	o := ApplyOptions(WithMetrics(m))

	err := errors.New("out of order")
	assert.Same(t, err, o.ObserveReject(KindRLEBitmap, "set", err))
	assert.Equal(t, int64(1), m.GetStats().Rejects)
}
