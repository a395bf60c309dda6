package twiddle

import (
	"sync/atomic"
	"time"
)

// Kind identifies a structure family in logs and metrics.
type Kind uint8

const (
	// KindBitmap is the dense bitmap.
	KindBitmap Kind = iota
	// KindRLEBitmap is the run-length encoded bitmap.
	KindRLEBitmap
	// KindBloomFilter is the standard Bloom filter.
	KindBloomFilter
	// KindA2BloomFilter is the two-buffer aging Bloom filter.
	KindA2BloomFilter
	// KindHyperLogLog is the HyperLogLog cardinality sketch.
	KindHyperLogLog
	// KindHyperBitBit is the HyperBitBit cardinality sketch.
	KindHyperBitBit
	// KindMinHash is the MinHash similarity sketch.
	KindMinHash
)

func (k Kind) String() string {
	switch k {
	case KindBitmap:
		return "bitmap"
	case KindRLEBitmap:
		return "bitmap_rle"
	case KindBloomFilter:
		return "bloomfilter"
	case KindA2BloomFilter:
		return "bloomfilter_a2"
	case KindHyperLogLog:
		return "hyperloglog"
	case KindHyperBitBit:
		return "hyperbitbit"
	case KindMinHash:
		return "minhash"
	default:
		return "unknown"
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Structures call the collector synchronously from the owning goroutine, so
// implementations shared between structures must be safe for concurrent use.
type MetricsCollector interface {
	// RecordRotation is called when a two-generation filter swaps its arrays.
	RecordRotation(generation uint64)

	// RecordMerge is called after each binary combine (union, intersection,
	// xor, merge). err is nil if successful.
	RecordMerge(kind Kind, duration time.Duration, err error)

	// RecordReject is called when a mutator refuses its input.
	RecordReject(kind Kind, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRotation(uint64)                  {}
func (NoopMetricsCollector) RecordMerge(Kind, time.Duration, error) {}
func (NoopMetricsCollector) RecordReject(Kind, error)               {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Rotations       atomic.Int64
	LastGeneration  atomic.Uint64
	MergeCount      atomic.Int64
	MergeErrors     atomic.Int64
	MergeTotalNanos atomic.Int64
	Rejects         atomic.Int64
}

// RecordRotation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRotation(generation uint64) {
	b.Rotations.Add(1)
	b.LastGeneration.Store(generation)
}

// RecordMerge implements MetricsCollector.
func (b *BasicMetricsCollector) RecordMerge(_ Kind, duration time.Duration, err error) {
	b.MergeCount.Add(1)
	b.MergeTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.MergeErrors.Add(1)
	}
}

// RecordReject implements MetricsCollector.
func (b *BasicMetricsCollector) RecordReject(Kind, error) {
	b.Rejects.Add(1)
}

// Stats is a point-in-time snapshot of a BasicMetricsCollector.
type Stats struct {
	Rotations      int64
	LastGeneration uint64
	MergeCount     int64
	MergeErrors    int64
	AvgMergeNanos  int64
	Rejects        int64
}

// GetStats returns a snapshot of the collected metrics.
func (b *BasicMetricsCollector) GetStats() Stats {
	s := Stats{
		Rotations:      b.Rotations.Load(),
		LastGeneration: b.LastGeneration.Load(),
		MergeCount:     b.MergeCount.Load(),
		MergeErrors:    b.MergeErrors.Load(),
		Rejects:        b.Rejects.Load(),
	}
	if s.MergeCount > 0 {
		s.AvgMergeNanos = b.MergeTotalNanos.Load() / s.MergeCount
	}
	return s
}
