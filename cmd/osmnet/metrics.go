package main

import (
	"runtime"

	"go.uber.org/zap"
)

// RuntimeMetrics holds memory and goroutine statistics
type RuntimeMetrics struct {
	Goroutines   int
	AllocMB      float64 // currently allocated heap
	TotalAllocMB float64 // cumulative allocated (includes freed)
	SysMB        float64 // total memory from OS
	HeapObjects  uint64
	NumGC        uint32
}

// getRuntimeMetrics collects current runtime statistics
func getRuntimeMetrics() RuntimeMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return RuntimeMetrics{
		Goroutines:   runtime.NumGoroutine(),
		AllocMB:      float64(m.Alloc) / 1024 / 1024,
		TotalAllocMB: float64(m.TotalAlloc) / 1024 / 1024,
		SysMB:        float64(m.Sys) / 1024 / 1024,
		HeapObjects:  m.HeapObjects,
		NumGC:        m.NumGC,
	}
}

func logRuntimeMetrics(logger *zap.Logger) {
	m := getRuntimeMetrics()
	logger.Debug("runtime metrics",
		zap.Int("goroutines", m.Goroutines),
		zap.Float64("alloc_mb", m.AllocMB),
		zap.Float64("total_alloc_mb", m.TotalAllocMB),
		zap.Float64("sys_mb", m.SysMB),
		zap.Uint64("heap_objects", m.HeapObjects),
		zap.Uint32("gc_cycles", m.NumGC),
	)
}
