// Package memory allocates aligned scratch arrays and accounts for them by
// purpose. Accounting is exported as Prometheus metrics.
package memory

import (
	"unsafe"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Alignment is the byte alignment of every array returned by Alloc.
const Alignment = 64

// Tag names what an allocation is for.
type Tag string

const (
	Buffers Tag = "buffers" // scratch buffers of buffered plans
	Plans   Tag = "plans"   // work arrays held by awake plans
	Measure Tag = "measure" // private arrays used while timing plans
)

var (
	allocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "algordft_scratch_allocations_total",
			Help: "Number of scratch arrays allocated, by tag",
		},
		[]string{"tag"},
	)
	bytesInUse = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "algordft_scratch_bytes_in_use",
			Help: "Bytes of scratch memory currently allocated, by tag",
		},
		[]string{"tag"},
	)
)

const elemSize = int(unsafe.Sizeof(float64(0)))

// Alloc returns a zeroed array of n float64 values whose first element is
// aligned to Alignment bytes.
func Alloc(n int, tag Tag) []float64 {
	allocations.WithLabelValues(string(tag)).Inc()
	bytesInUse.WithLabelValues(string(tag)).Add(float64(n * elemSize))

	if n == 0 {
		return []float64{}
	}

	pad := Alignment / elemSize
	backing := make([]float64, n+pad)

	off := 0
	if rem := int(uintptr(unsafe.Pointer(&backing[0])) % Alignment); rem != 0 {
		off = (Alignment - rem) / elemSize
	}

	return backing[off : off+n : off+n]
}

// Free releases an array obtained from Alloc with the same tag. The memory
// itself is reclaimed by the garbage collector; Free only updates
// accounting. A nil array is ignored.
func Free(buf []float64, tag Tag) {
	if buf == nil {
		return
	}

	bytesInUse.WithLabelValues(string(tag)).Sub(float64(len(buf) * elemSize))
}

// Allocations returns the number of arrays allocated so far with tag.
func Allocations(tag Tag) float64 {
	return counterValue(allocations.WithLabelValues(string(tag)))
}

// BytesInUse returns the bytes currently accounted to tag.
func BytesInUse(tag Tag) float64 {
	return gaugeValue(bytesInUse.WithLabelValues(string(tag)))
}
